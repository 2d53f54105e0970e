package commands

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/housie/internal/batch"
	"github.com/dyluth/housie/internal/config"
	"github.com/dyluth/housie/internal/hoard"
	"github.com/dyluth/housie/internal/printer"
	"github.com/dyluth/housie/pkg/strip"
	"github.com/spf13/cobra"
)

// batchFlags are the flags generate and bench share. They override the
// values loaded from housie.yml when set.
type batchFlags struct {
	strips      int
	generations int
	workers     int
	seed        uint64
	verbose     bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.strips, "strips", "n", config.DefaultStrips, "Strips per generation")
	cmd.Flags().IntVarP(&f.generations, "generations", "g", config.DefaultGenerations, "Number of timed generations")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel workers (0 = one per CPU)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Base seed for reproducible output (default: non-deterministic)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log batch events and per-generation timing")
}

// apply overlays explicitly set flags on the loaded configuration.
func (f *batchFlags) apply(cmd *cobra.Command, cfg *config.HousieConfig) error {
	flags := cmd.Flags()
	if flags.Changed("strips") {
		cfg.Batch.Strips = f.strips
	}
	if flags.Changed("generations") {
		cfg.Batch.Generations = f.generations
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if flags.Changed("seed") {
		seed := f.seed
		cfg.Batch.Seed = &seed
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = f.verbose
	}

	if cfg.Batch.Strips < 1 {
		return fmt.Errorf("--strips must be >= 1, got %d", cfg.Batch.Strips)
	}
	if cfg.Batch.Generations < 1 {
		return fmt.Errorf("--generations must be >= 1, got %d", cfg.Batch.Generations)
	}
	if cfg.Batch.Workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", cfg.Batch.Workers)
	}
	return nil
}

func (f *batchFlags) options(cfg *config.HousieConfig) batch.Options {
	return batch.Options{
		Strips:      cfg.Batch.Strips,
		Generations: cfg.Batch.Generations,
		Workers:     cfg.Batch.Workers,
		Seed:        cfg.Batch.Seed,
		Verbose:     cfg.Output.Verbose,
	}
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	flags := &batchFlags{}
	var format string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate ticket strips",
		Long: `Generate strips of 90-ball bingo tickets.

Output formats:
  • text  - each strip printed as six ticket grids
  • jsonl - one JSON record per strip, readable by 'housie verify'
  • json  - one pretty-printed JSON record per strip, for reading
  • none  - generate only (default); useful with --verbose for timing

Every strip records its seed. With --seed, strip N of generation G is built
from seed+(G-1)*strips+(N-1), so a run can be replayed exactly regardless of
the worker count.

Examples:
  housie generate -n 1 --format text
  housie generate -n 10000 -g 5 --verbose
  housie generate -n 100 --seed 42 --format jsonl > strips.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return printer.Error("Invalid arguments", err.Error(), nil)
			}
			if cmd.Flags().Changed("format") {
				if !config.ValidFormat(format) {
					return printer.Error(
						"Invalid arguments",
						fmt.Sprintf("unknown --format %q", format),
						[]string{"Use one of: text, jsonl, json, none"},
					)
				}
				cfg.Output.Format = format
			}

			return runGenerate(cmd, flags.options(cfg), cfg.Output.Format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatNone, "Output format: text, jsonl, json or none")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts batch.Options, format string) error {
	runner, err := batch.NewRunner(opts)
	if err != nil {
		return printer.Error("Invalid arguments", err.Error(), nil)
	}
	warnWorkerCap(opts, runner)

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	var emit batch.EmitFunc
	if format != config.FormatNone {
		emit = func(g batch.Generated) error {
			rec, err := hoard.NewRecord(g.RunID, g.Generation, g.Index, g.Strip)
			if err != nil {
				return err
			}
			switch format {
			case config.FormatJSONL:
				return hoard.WriteJSONL(out, rec)
			case config.FormatJSON:
				return hoard.FormatSingleJSON(out, rec)
			default:
				return hoard.FormatText(out, rec)
			}
		}
	}

	report, err := runner.Run(context.Background(), emit)
	if err != nil {
		out.Flush()
		return generationError(runner.RunID(), err)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Strips own stdout; the summary goes to stderr.
	if opts.Verbose {
		printer.Notice("Generated %d strips in %d ms (run %s)\n",
			report.Strips(), report.Total.Milliseconds(), report.RunID)
	}
	return nil
}

// generationError reports a failed batch. Invariant violations are defects
// in the generator, so the seed that reproduces them is worth keeping.
func generationError(runID string, err error) error {
	details := map[string]string{"Run": runID}

	if strip.IsInvariantViolation(err) {
		return printer.ErrorWithContext(
			"Strip generation failed",
			err.Error(),
			details,
			[]string{
				"Re-run with a different --seed",
				"Report the seed above: it reproduces the failure with 'housie generate -n 1 --seed N'",
			},
		)
	}

	return printer.ErrorWithContext("Strip generation failed", err.Error(), details, nil)
}

// warnWorkerCap reports an explicit --workers value the runner lowered to
// the strip count.
func warnWorkerCap(opts batch.Options, runner *batch.Runner) {
	if opts.Workers > runner.Workers() {
		printer.Warning("Using %d workers: only %d strips per generation (--workers %d)\n",
			runner.Workers(), opts.Strips, opts.Workers)
	}
}

func formatSeed(seed *uint64) string {
	if seed == nil {
		return "random"
	}
	return strconv.FormatUint(*seed, 10)
}
