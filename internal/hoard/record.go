// Package hoard formats generated strips for output and reads them back.
package hoard

import (
	"github.com/dyluth/housie/pkg/strip"
	"github.com/google/uuid"
)

// StripRecord is the serialised form of one generated strip. Blank cells are
// written as 0.
type StripRecord struct {
	ID         string       `json:"id"`         // UUID - unique identifier for this strip
	RunID      string       `json:"run_id"`     // UUID of the batch that produced it
	Seed       uint64       `json:"seed"`       // Replays the strip with `housie generate --seed`
	Generation int          `json:"generation"` // 1-based generation within the batch
	Index      int          `json:"index"`      // 1-based position within the generation
	Tickets    []strip.Grid `json:"tickets"`    // Six 3x9 grids in strip order
}

// NewRecord captures a generated strip. The strip must be fully laid out.
func NewRecord(runID string, generation, index int, st *strip.Strip) (*StripRecord, error) {
	grids, err := st.Grids()
	if err != nil {
		return nil, err
	}
	seed, _ := st.Seed()

	return &StripRecord{
		ID:         uuid.New().String(),
		RunID:      runID,
		Seed:       seed,
		Generation: generation,
		Index:      index,
		Tickets:    grids,
	}, nil
}

// Validate checks the record's tickets form a valid strip.
func (r *StripRecord) Validate() error {
	return strip.ValidateGrids(r.Tickets)
}
