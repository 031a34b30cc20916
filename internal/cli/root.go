// Package cli implements the planner command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/config"
	"github.com/SyrineLarbi/Daily-planner/internal/ui"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configPath string
	dataDir    string
	storage    string
}

func newRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "A daily planner board",
		Long: `planner keeps a single board of daily tasks.

Run without a subcommand to open the terminal board, or use "planner serve"
to open the same board in a browser.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				return ui.Run(a)
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding the board database")
	flags.StringVar(&opts.storage, "storage", "", `storage backend: "sqlite" or "memory"`)

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newClearCmd(opts),
		newMoveCmd(opts),
		newDoneCmd(opts),
		newServeCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(version),
	)

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.storage != "" {
		cfg.Storage = o.storage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withApp opens the application for the duration of fn
func (o *globalOptions) withApp(fn func(a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	runErr := fn(a)
	if err := a.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "planner v%s\n", version)
		},
	}
}
