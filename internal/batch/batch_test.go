package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/dyluth/housie/pkg/strip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(s uint64) *uint64 { return &s }

func collect(t *testing.T, opts Options) ([]Generated, *Report) {
	t.Helper()

	r, err := NewRunner(opts)
	require.NoError(t, err)

	var got []Generated
	report, err := r.Run(context.Background(), func(g Generated) error {
		got = append(got, g)
		return nil
	})
	require.NoError(t, err)
	return got, report
}

func TestNewRunner_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "zero strips", opts: Options{Strips: 0, Generations: 1}, wantErr: "strips must be >= 1"},
		{name: "zero generations", opts: Options{Strips: 1, Generations: 0}, wantErr: "generations must be >= 1"},
		{name: "negative workers", opts: Options{Strips: 1, Generations: 1, Workers: -1}, wantErr: "workers must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(tt.opts)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRunner_Workers(t *testing.T) {
	r, err := NewRunner(Options{Strips: 3, Generations: 1, Workers: 16})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Workers(), "workers are capped at the strip count")

	r, err = NewRunner(Options{Strips: 100, Generations: 1})
	require.NoError(t, err)
	assert.Greater(t, r.Workers(), 0)

	_, err = uuid.Parse(r.RunID())
	assert.NoError(t, err)
}

func TestRun_EmitsInOrder(t *testing.T) {
	got, report := collect(t, Options{Strips: 20, Generations: 3, Workers: 4, Seed: seedPtr(100)})

	require.Len(t, got, 60)
	for i, g := range got {
		assert.Equal(t, i/20+1, g.Generation)
		assert.Equal(t, i%20+1, g.Index)
		assert.Equal(t, report.RunID, g.RunID)
		require.NotNil(t, g.Strip)
		require.NoError(t, strip.Validate(g.Strip))
	}

	require.Len(t, report.Generations, 3)
	assert.Equal(t, 60, report.Strips())
	for i, res := range report.Generations {
		assert.Equal(t, i+1, res.Generation)
		assert.Equal(t, 20, res.Strips)
	}
}

func TestRun_SeededIsReproducibleAcrossWorkerCounts(t *testing.T) {
	serial, _ := collect(t, Options{Strips: 12, Generations: 2, Workers: 1, Seed: seedPtr(7)})
	parallel, _ := collect(t, Options{Strips: 12, Generations: 2, Workers: 6, Seed: seedPtr(7)})

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Seed, parallel[i].Seed)
		assert.Equal(t, serial[i].Strip.String(), parallel[i].Strip.String())
	}
}

func TestRun_SeedsMatchStripSeed(t *testing.T) {
	got, _ := collect(t, Options{Strips: 5, Generations: 2, Workers: 2, Seed: seedPtr(1000)})

	for _, g := range got {
		assert.Equal(t, StripSeed(1000, 5, g.Generation, g.Index), g.Seed)

		seed, ok := g.Strip.Seed()
		require.True(t, ok)
		assert.Equal(t, g.Seed, seed)
	}
	assert.Equal(t, uint64(1000), got[0].Seed)
	assert.Equal(t, uint64(1009), got[9].Seed)
}

func TestRun_UnseededStripsDiffer(t *testing.T) {
	got, _ := collect(t, Options{Strips: 50, Generations: 1, Workers: 8})

	seeds := make(map[uint64]bool)
	for _, g := range got {
		assert.False(t, seeds[g.Seed], "seed %d reused", g.Seed)
		seeds[g.Seed] = true
	}
}

func TestRun_NilEmit(t *testing.T) {
	r, err := NewRunner(Options{Strips: 10, Generations: 2})
	require.NoError(t, err)

	report, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Strips())
}

func TestRun_EmitErrorStops(t *testing.T) {
	r, err := NewRunner(Options{Strips: 5, Generations: 3, Seed: seedPtr(1)})
	require.NoError(t, err)

	sentinel := errors.New("disk full")
	calls := 0
	report, err := r.Run(context.Background(), func(g Generated) error {
		calls++
		if calls == 2 {
			return sentinel
		}
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, calls)
	require.NotNil(t, report)
	assert.Len(t, report.Generations, 1)
}

func TestRun_CancelledContext(t *testing.T) {
	r, err := NewRunner(Options{Strips: 100, Generations: 5, Workers: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := r.Run(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Generations)
}

func TestRun_Verbose(t *testing.T) {
	// Logging must not change what is generated.
	quiet, _ := collect(t, Options{Strips: 3, Generations: 1, Seed: seedPtr(5)})
	loud, _ := collect(t, Options{Strips: 3, Generations: 1, Seed: seedPtr(5), Verbose: true})

	for i := range quiet {
		assert.Equal(t, quiet[i].Strip.String(), loud[i].Strip.String())
	}
}

// captureLog redirects the standard logger for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

// logEvents decodes the JSON event lines from captured log output.
func logEvents(t *testing.T, out string) []map[string]interface{} {
	t.Helper()

	var events []map[string]interface{}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &event), line)
		events = append(events, event)
	}
	return events
}

func TestRun_VerboseLogsGenerationEvents(t *testing.T) {
	buf := captureLog(t)

	_, report := collect(t, Options{Strips: 4, Generations: 2, Seed: seedPtr(5), Verbose: true})

	out := buf.String()
	assert.Contains(t, out, "[Batch] Took ")
	assert.Contains(t, out, "ms to generate 4 ticket strips")

	var completed []map[string]interface{}
	var types []string
	for _, e := range logEvents(t, out) {
		types = append(types, e["event_type"].(string))
		if e["event_type"] == "generation_completed" {
			completed = append(completed, e)
		}
	}
	assert.Equal(t, []string{"batch_started", "generation_completed", "generation_completed", "batch_completed"}, types)

	require.Len(t, completed, 2)
	for i, e := range completed {
		assert.Equal(t, float64(i+1), e["generation"])
		assert.Equal(t, float64(4), e["strips"])
		assert.Contains(t, e, "duration_ms")
		assert.Equal(t, report.RunID, e["run_id"])
		assert.Equal(t, "batch", e["component"])
	}
}

func TestRun_QuietLogsNothing(t *testing.T) {
	buf := captureLog(t)

	collect(t, Options{Strips: 2, Generations: 1, Seed: seedPtr(5)})

	assert.Empty(t, buf.String())
}

func TestStripSeed(t *testing.T) {
	assert.Equal(t, uint64(0), StripSeed(0, 10, 1, 1))
	assert.Equal(t, uint64(9), StripSeed(0, 10, 1, 10))
	assert.Equal(t, uint64(10), StripSeed(0, 10, 2, 1))
	assert.Equal(t, uint64(42+25), StripSeed(42, 5, 6, 1))
}
