package commands

import (
	"os"

	"github.com/dyluth/housie/internal/printer"
	"github.com/dyluth/housie/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default housie.yml",
		Long: `Create a housie.yml with default batch settings in the current directory.

Use --force to overwrite an existing housie.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}

			path, err := scaffold.Initialize(dir, force)
			if err != nil {
				return printer.Error("Initialization failed", err.Error(), nil)
			}

			printer.Success("Created %s\n", path)
			printer.Info("\nNext steps:\n")
			printer.Info("  1. Adjust batch settings in %s\n", path)
			printer.Info("  2. Run 'housie generate --format text -n 1' to print a strip\n")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing housie.yml")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to initialize (default: current directory)")
	return cmd
}
