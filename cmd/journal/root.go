package main

import (
	"os"
	"strings"

	"journal/config"
	domainerrors "journal/internal/domain/errors"

	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	ConfigDir string
	Database  string
	Verbose   bool
}

// apply overrides the loaded configuration with command line flags.
func (o *globalOptions) apply(cfg *config.Config) *config.Config {
	if db := strings.TrimSpace(o.Database); db != "" {
		cfg.Database.Path = db
	}
	if o.Verbose {
		cfg.Env.Log.Level = "debug"
	}

	return cfg
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "A private mood journal with streaks and insights.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigDir != "" {
				return os.Setenv(config.ConfigDirEnv, opts.ConfigDir)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "Directory holding config.yaml.")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "Path of the journal database, overriding the config.")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug output to stderr.")

	addSessionCommands(cmd, opts)
	addEntryCommands(cmd, opts)
	addCatalogCommands(cmd, opts)
	addStats(cmd, opts)
	addExport(cmd, opts)

	return cmd
}

// exitCode maps error kinds to distinct process exit codes.
func exitCode(err error) int {
	switch domainerrors.KindOf(err) {
	case domainerrors.KindValidation:
		return 2
	case domainerrors.KindNotFound:
		return 3
	case domainerrors.KindConflict:
		return 4
	case domainerrors.KindUnauthorized:
		return 5
	case domainerrors.KindConstraint:
		return 6
	default:
		return 1
	}
}
