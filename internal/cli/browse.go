package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/openspend/procview/internal/data"
	"github.com/openspend/procview/internal/tui"
)

// ErrNotATerminal is returned when a browse command runs without a TTY.
var ErrNotATerminal = errors.New("browsing requires an interactive terminal")

// modelBuilder builds the screen for one record type from a loaded snapshot.
type modelBuilder func(snap *data.Snapshot) (tea.Model, error)

func newVendorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "Browse vendors",
		RunE: runBrowse(func(snap *data.Snapshot) (tea.Model, error) {
			return tui.NewVendorBrowser(snap.Vendors, appConfig.UI.Overscan, logger)
		}),
	}
}

func newInstitutionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "institutions",
		Short: "Browse contracting institutions",
		RunE: runBrowse(func(snap *data.Snapshot) (tea.Model, error) {
			return tui.NewInstitutionBrowser(snap.Institutions, appConfig.UI.Overscan, logger)
		}),
	}
}

func newSanctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanctions",
		Short: "Browse sanction listings",
		RunE: runBrowse(func(snap *data.Snapshot) (tea.Model, error) {
			return tui.NewSanctionBrowser(snap.Sanctions, appConfig.UI.Overscan, logger)
		}),
	}
}

func newReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "Browse investigation reports",
		RunE: runBrowse(func(snap *data.Snapshot) (tea.Model, error) {
			return tui.NewReportBrowser(snap.Reports, appConfig.UI.Overscan, logger), nil
		}),
	}
}

// runBrowse loads the snapshot (or sample data), builds the screen, and runs
// the Bubble Tea program over the alternate screen with mouse support.
func runBrowse(build modelBuilder) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if !isTerminal(os.Stdout) {
			return ErrNotATerminal
		}

		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}

		if err := switchToFileLogging(); err != nil {
			return err
		}
		logger.Info().
			Int("vendors", len(snap.Vendors)).
			Int("institutions", len(snap.Institutions)).
			Int("sanctions", len(snap.Sanctions)).
			Int("reports", len(snap.Reports)).
			Str("schema", snap.Manifest.SchemaVersion).
			Msg("snapshot loaded")

		model, err := build(snap)
		if err != nil {
			return err
		}

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running browser: %w", err)
		}
		return nil
	}
}

// loadSnapshot resolves the data source: --sample generates records in
// memory, otherwise --snapshot or the configured snapshot directory is read
// from disk.
func loadSnapshot(cmd *cobra.Command) (*data.Snapshot, error) {
	if sample, _ := cmd.Flags().GetInt("sample"); sample > 0 {
		return data.SampleSnapshot(sample), nil
	}

	dir, _ := cmd.Flags().GetString("snapshot")
	if dir == "" {
		dir = appConfig.Snapshot.Dir
	}
	if dir == "" {
		return nil, errors.New("no snapshot directory: pass --snapshot, set snapshot.dir in the config, or use --sample")
	}
	return data.Load(cmd.Context(), dir)
}
