package commands

import (
	"fmt"

	"github.com/dyluth/housie/internal/config"
	"github.com/dyluth/housie/internal/printer"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	noColor    bool
}

// NewRootCmd builds the housie command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "housie",
		Short: "Housie - 90-ball bingo ticket strip generator",
		Long: `Housie generates strips of 90-ball bingo tickets.

A strip is six 3x9 tickets that together hold every number from 1 to 90
exactly once. Every column of every ticket holds one to three numbers from
its decade, and every row holds five numbers and four blanks.

Strips are generated from a seed, so any strip can be replayed exactly.`,
		Version: versionString,
		// Prevent silent success when unknown flags are passed to root command
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				printer.SetColor(false)
			}
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to housie.yml")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newBenchCmd(opts),
		newVerifyCmd(),
		newInitCmd(),
	)

	return rootCmd
}

// Execute runs the root command. Errors have already been printed by the
// printer package when they reach main.
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// loadConfig reads the configured housie.yml, falling back to defaults when
// the default path does not exist.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.HousieConfig, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadOrDefault(opts.configPath, explicit)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"Invalid configuration",
			err.Error(),
			map[string]string{"Config": opts.configPath},
			[]string{"Run 'housie init' to create a default housie.yml"},
		)
	}
	return cfg, nil
}
