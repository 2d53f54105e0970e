package commands

import (
	"context"

	"github.com/dyluth/housie/internal/batch"
	"github.com/dyluth/housie/internal/hoard"
	"github.com/dyluth/housie/internal/printer"
	"github.com/spf13/cobra"
)

func newBenchCmd(global *globalOptions) *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time strip generation",
		Long: `Generate strips without writing them and print a timing table.

Each generation is timed separately so warm-up effects are visible across
generations.

Examples:
  housie bench
  housie bench -n 100000 -g 5 -w 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return printer.Error("Invalid arguments", err.Error(), nil)
			}

			opts := flags.options(cfg)
			runner, err := batch.NewRunner(opts)
			if err != nil {
				return printer.Error("Invalid arguments", err.Error(), nil)
			}
			warnWorkerCap(opts, runner)

			printer.Step("Generating %d x %d strips (seed: %s)\n", opts.Generations, opts.Strips, formatSeed(opts.Seed))

			report, err := runner.Run(context.Background(), nil)
			if err != nil {
				return generationError(runner.RunID(), err)
			}

			return hoard.FormatSummary(cmd.OutOrStdout(), report)
		},
	}

	flags.register(cmd)
	return cmd
}
