// Package batch drives bulk strip generation: a number of timed generations,
// each producing a fixed number of strips on a bounded pool of workers.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/dyluth/housie/pkg/strip"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch run.
type Options struct {
	Strips      int     // Strips per generation
	Generations int     // Number of timed generations
	Workers     int     // Parallel workers, 0 = runtime.NumCPU()
	Seed        *uint64 // Base seed; nil = every strip seeded non-deterministically
	Verbose     bool    // Log lifecycle events and per-generation timing
}

// Generated is one strip produced by a batch, with its position in the run.
type Generated struct {
	RunID      string
	Generation int // 1-based
	Index      int // 1-based within the generation
	Seed       uint64
	Strip      *strip.Strip
}

// EmitFunc receives every generated strip, in generation then index order.
// Returning an error stops the batch.
type EmitFunc func(g Generated) error

// GenerationResult records the timing of one generation.
type GenerationResult struct {
	Generation int
	Strips     int
	Duration   time.Duration
}

// Report summarises a finished batch.
type Report struct {
	RunID       string
	Workers     int
	Generations []GenerationResult
	Total       time.Duration
}

// Strips returns the total number of strips generated.
func (r *Report) Strips() int {
	n := 0
	for _, g := range r.Generations {
		n += g.Strips
	}
	return n
}

// Runner runs one batch. A Runner is not reusable.
type Runner struct {
	opts    Options
	runID   string
	workers int

	mu      sync.Mutex
	results []GenerationResult
}

// NewRunner validates opts and creates a runner with a fresh run ID.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Strips < 1 {
		return nil, fmt.Errorf("strips must be >= 1, got %d", opts.Strips)
	}
	if opts.Generations < 1 {
		return nil, fmt.Errorf("generations must be >= 1, got %d", opts.Generations)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Strips {
		workers = opts.Strips
	}

	return &Runner{
		opts:    opts,
		runID:   uuid.New().String(),
		workers: workers,
	}, nil
}

// RunID returns the UUID identifying this batch.
func (r *Runner) RunID() string {
	return r.runID
}

// Workers returns the effective worker count.
func (r *Runner) Workers() int {
	return r.workers
}

// StripSeed derives the seed of a strip from the batch base seed, so a seeded
// batch produces the same strips whatever the worker count.
func StripSeed(base uint64, strips, generation, index int) uint64 {
	return base + uint64(generation-1)*uint64(strips) + uint64(index-1)
}

// Run generates every generation in turn. Strips within a generation are
// built in parallel, each from its own RandomSource, and handed to emit in
// index order once the whole generation is done. A nil emit discards them.
func (r *Runner) Run(ctx context.Context, emit EmitFunc) (*Report, error) {
	started := time.Now()

	r.logEvent("batch_started", map[string]interface{}{
		"strips":      r.opts.Strips,
		"generations": r.opts.Generations,
		"workers":     r.workers,
		"seeded":      r.opts.Seed != nil,
	})

	for gen := 1; gen <= r.opts.Generations; gen++ {
		genStart := time.Now()

		strips, err := r.generate(ctx, gen)
		if err != nil {
			r.logEvent("batch_failed", map[string]interface{}{
				"generation": gen,
				"error":      err.Error(),
			})
			return r.report(started), err
		}

		elapsed := time.Since(genStart)
		r.record(GenerationResult{Generation: gen, Strips: len(strips), Duration: elapsed})
		if r.opts.Verbose {
			log.Printf("[Batch] Took %d ms to generate %d ticket strips", elapsed.Milliseconds(), len(strips))
		}
		r.logEvent("generation_completed", map[string]interface{}{
			"generation":  gen,
			"strips":      len(strips),
			"duration_ms": elapsed.Milliseconds(),
		})

		if emit != nil {
			for _, g := range strips {
				if err := emit(g); err != nil {
					return r.report(started), fmt.Errorf("failed to emit strip %d of generation %d: %w", g.Index, gen, err)
				}
			}
		}
	}

	report := r.report(started)
	r.logEvent("batch_completed", map[string]interface{}{
		"strips":      report.Strips(),
		"duration_ms": report.Total.Milliseconds(),
	})
	return report, nil
}

func (r *Runner) generate(ctx context.Context, gen int) ([]Generated, error) {
	out := make([]Generated, r.opts.Strips)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range out {
		index := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var seed uint64
			if r.opts.Seed != nil {
				seed = StripSeed(*r.opts.Seed, r.opts.Strips, gen, index)
			} else {
				seed = strip.RandomSeed()
			}

			st, err := strip.GenerateStrip(&seed)
			if err != nil {
				r.logEvent("strip_failed", map[string]interface{}{
					"generation": gen,
					"index":      index,
					"seed":       seed,
					"error":      err.Error(),
				})
				return fmt.Errorf("strip %d of generation %d: %w", index, gen, err)
			}

			out[index-1] = Generated{
				RunID:      r.runID,
				Generation: gen,
				Index:      index,
				Seed:       seed,
				Strip:      st,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Runner) record(res GenerationResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *Runner) report(started time.Time) *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Report{
		RunID:       r.runID,
		Workers:     r.workers,
		Generations: append([]GenerationResult(nil), r.results...),
		Total:       time.Since(started),
	}
}

// logEvent logs a structured event in JSON format.
func (r *Runner) logEvent(eventType string, data map[string]interface{}) {
	if !r.opts.Verbose {
		return
	}

	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "batch"
	data["event_type"] = eventType
	data["run_id"] = r.runID

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Batch] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
