package strip

import (
	"fmt"
	"strings"
)

// Strip is six tickets that together hold the numbers 1-90 exactly once. A
// strip is read-only once generated.
type Strip struct {
	seed    uint64
	seeded  bool
	tickets [TicketsPerStrip]*Ticket
}

// GenerateStrip builds a strip from a fresh RandomSource. A nil seed picks a
// non-deterministic one; either way the effective seed is available from
// Strip.Seed and replays the same strip.
func GenerateStrip(seed *uint64) (*Strip, error) {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		s = RandomSeed()
	}

	st, err := Generate(NewSource(s))
	if err != nil {
		return nil, fmt.Errorf("generate strip (seed %d): %w", s, err)
	}
	st.seed = s
	st.seeded = true
	return st, nil
}

// Generate builds a strip drawing every random decision from rs.
func Generate(rs RandomSource) (*Strip, error) {
	st := &Strip{}
	for i := range st.tickets {
		st.tickets[i] = NewTicket(i + 1)
	}

	pool := NewNumberPool(rs)

	if err := st.populate(pool); err != nil {
		return nil, err
	}
	if err := st.spread(pool); err != nil {
		return nil, err
	}
	for _, t := range st.tickets {
		if err := t.layout(rs); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// populate gives every column of every ticket one number, so no column is
// ever left empty.
func (st *Strip) populate(pool *NumberPool) error {
	for _, t := range st.tickets {
		for col := 0; col < Columns; col++ {
			n, err := pool.PopFirst(col)
			if err != nil {
				return err
			}
			if err := t.Insert(col, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// spread hands out the numbers left after populate. Groups are visited
// column-major from the top of the remaining count down (i mod 9), and each
// number goes to the first ticket that is neither complete nor full in that
// column. Column 0 has the fewest numbers and empties first; its turns fall
// back to the lowest group that still has numbers.
func (st *Strip) spread(pool *NumberPool) error {
	placed := 0
	for _, t := range st.tickets {
		placed += t.Count()
	}
	remaining := MaxNumber - placed

	for i := remaining - 1; i >= 0; i-- {
		group := i % Columns
		if pool.IsEmpty(group) {
			col, ok := pool.FirstNonEmptyGroup()
			if !ok {
				return invariant("spread", 0, group, ErrPoolExhausted)
			}
			group = col
		}

		t := st.firstEligible(group)
		if t == nil {
			return invariant("spread", 0, group, ErrNoEligibleTicket)
		}

		n, err := pool.PopFirst(group)
		if err != nil {
			return err
		}
		if err := t.Insert(group, n); err != nil {
			return err
		}
	}
	return nil
}

func (st *Strip) firstEligible(column int) *Ticket {
	for _, t := range st.tickets {
		if !t.IsComplete() && !t.IsColumnFull(column) {
			return t
		}
	}
	return nil
}

// Seed returns the seed the strip was generated from. ok is false for strips
// built with Generate from a caller-supplied RandomSource.
func (st *Strip) Seed() (seed uint64, ok bool) {
	return st.seed, st.seeded
}

// Tickets returns the strip's tickets in strip order.
func (st *Strip) Tickets() []*Ticket {
	return append([]*Ticket(nil), st.tickets[:]...)
}

// Ticket returns the ticket at a 1-based position, or nil.
func (st *Strip) Ticket(number int) *Ticket {
	if number < 1 || number > TicketsPerStrip {
		return nil
	}
	return st.tickets[number-1]
}

// Grids returns every ticket's rows in strip order.
func (st *Strip) Grids() ([]Grid, error) {
	grids := make([]Grid, 0, TicketsPerStrip)
	for _, t := range st.tickets {
		g, err := t.Rows()
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	return grids, nil
}

func (st *Strip) String() string {
	out, err := RenderStrip(st)
	if err != nil {
		var b strings.Builder
		for _, t := range st.tickets {
			b.WriteString(t.String())
			b.WriteByte('\n')
		}
		return b.String()
	}
	return out
}
