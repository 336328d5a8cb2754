package cli

import (
	"github.com/spf13/cobra"

	"github.com/openspend/procview/internal/data"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot utilities",
	}
	cmd.AddCommand(newSnapshotValidateCmd())
	return cmd
}

func newSnapshotValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load a snapshot and check its schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := loadSnapshot(cmd)
			if err != nil {
				return err
			}
			cmd.Printf("schema version: %s (supported: %s)\n", snap.Manifest.SchemaVersion, data.SchemaConstraint)
			cmd.Printf("vendors:       %d\n", len(snap.Vendors))
			cmd.Printf("institutions:  %d\n", len(snap.Institutions))
			cmd.Printf("sanctions:     %d\n", len(snap.Sanctions))
			cmd.Printf("reports:       %d\n", len(snap.Reports))
			return nil
		},
	}
}
