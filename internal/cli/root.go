// Package cli wires the procview commands: one browse command per record
// type, plus snapshot validation.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openspend/procview/internal/config"
	"github.com/openspend/procview/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Package-level state established by the root command's PersistentPreRunE.
//
//nolint:gochecknoglobals // Shared across subcommands, set up once per run.
var (
	appConfig config.Config
	logger    zerolog.Logger
	logCloser io.Closer
)

// NewRootCmd creates the root Cobra command for the procview CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "procview",
		Short: "Terminal browser for procurement-risk data",
		Long: "procview browses procurement-risk snapshots (vendors, institutions,\n" +
			"sanctions, investigation reports) in the terminal, virtualizing large\n" +
			"record sets so even 100,000-row snapshots scroll without lag.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default ~/.procview/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("snapshot", "", "snapshot directory to browse")
	cmd.PersistentFlags().Int("sample", 0, "browse generated sample data with this many vendors instead of a snapshot")

	cmd.AddCommand(
		newVendorsCmd(),
		newInstitutionsCmd(),
		newSanctionsCmd(),
		newReportsCmd(),
		newSnapshotCmd(),
	)
	return cmd
}

// setup loads configuration and builds the application logger.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}

	root, closer, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	logger = logging.ComponentLogger(root, "cli")
	logCloser = closer
	return nil
}

// switchToFileLogging redirects logging to the default log file before a
// Bubble Tea program takes over the terminal. Without this, any log line
// would be painted into the alternate screen.
func switchToFileLogging() error {
	if appConfig.Logging.File != "" {
		return nil
	}
	path, err := config.DefaultLogPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	root, closer, err := logging.New(logging.Config{
		Level:  appConfig.Logging.Level,
		Format: appConfig.Logging.Format,
		File:   path,
	})
	if err != nil {
		return err
	}
	logger = logging.ComponentLogger(root, "cli")
	logCloser = closer
	return nil
}
