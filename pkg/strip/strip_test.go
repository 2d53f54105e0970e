package strip

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, seed uint64) *Strip {
	t.Helper()
	st, err := GenerateStrip(&seed)
	require.NoError(t, err)
	return st
}

func TestGenerateStrip_SeedZero(t *testing.T) {
	st := generate(t, 0)

	require.Len(t, st.Tickets(), TicketsPerStrip)

	first := st.Ticket(1).Numbers(0)
	require.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), MaxPerColumn)
	assert.True(t, slices.IsSorted(first))
	for _, n := range first {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 9)
	}

	var eighties []int
	for _, tk := range st.Tickets() {
		eighties = append(eighties, tk.Numbers(8)...)
	}
	slices.Sort(eighties)
	assert.Equal(t, []int{80, 81, 82, 83, 84, 85, 86, 87, 88, 89, 90}, eighties)
}

func TestGenerateStrip_Properties(t *testing.T) {
	for seed := uint64(0); seed < 500; seed++ {
		st := generate(t, seed)
		require.NoError(t, Validate(st), "seed %d", seed)

		seen := make(map[int]int)
		for _, tk := range st.Tickets() {
			require.Equal(t, NumbersPerTicket, tk.Count(), "seed %d ticket %d", seed, tk.Number())

			for col := 0; col < Columns; col++ {
				require.Len(t, tk.Column(col), Rows, "seed %d ticket %d column %d", seed, tk.Number(), col)

				numbers := tk.Numbers(col)
				require.NotEmpty(t, numbers)
				require.LessOrEqual(t, len(numbers), MaxPerColumn)
				require.True(t, slices.IsSorted(numbers), "seed %d ticket %d column %d: %v", seed, tk.Number(), col, numbers)

				low, high := ColumnRange(col)
				for _, n := range numbers {
					require.GreaterOrEqual(t, n, low)
					require.LessOrEqual(t, n, high)
					seen[n]++
				}
			}

			rows, err := tk.Rows()
			require.NoError(t, err)
			for r, row := range rows {
				blanks := 0
				for _, v := range row {
					if v == Blank {
						blanks++
					}
				}
				require.Equal(t, Columns-NumbersPerRow, blanks, "seed %d ticket %d row %d", seed, tk.Number(), r)
			}
		}

		require.Len(t, seen, MaxNumber, "seed %d", seed)
		for n := 1; n <= MaxNumber; n++ {
			require.Equal(t, 1, seen[n], "seed %d number %d", seed, n)
		}
	}
}

func TestGenerateStrip_ColumnAllocation(t *testing.T) {
	// The spread sweep depends only on group sizes, never on which numbers
	// were drawn, so every strip allocates the same counts per column.
	expected := [TicketsPerStrip][Columns]int{
		{1, 1, 1, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 1, 1, 1, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 1, 1, 1},
		{1, 1, 1, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 1, 1, 1, 2, 2, 2},
		{1, 2, 2, 2, 2, 2, 1, 1, 2},
	}

	for _, seed := range []uint64{0, 1, 42, 1 << 40} {
		st := generate(t, seed)
		for i, tk := range st.Tickets() {
			var counts [Columns]int
			for col := range counts {
				counts[col] = tk.ColumnCount(col)
			}
			assert.Equal(t, expected[i], counts, "seed %d ticket %d", seed, i+1)
		}
	}
}

func TestGenerateStrip_Deterministic(t *testing.T) {
	a := generate(t, 1234)
	b := generate(t, 1234)

	for i := range a.Tickets() {
		for col := 0; col < Columns; col++ {
			assert.Equal(t, a.Tickets()[i].Column(col), b.Tickets()[i].Column(col))
		}
	}
	assert.Equal(t, a.String(), b.String())

	seed, ok := a.Seed()
	assert.True(t, ok)
	assert.Equal(t, uint64(1234), seed)
}

func TestGenerateStrip_DifferentSeedsDiffer(t *testing.T) {
	a := generate(t, 1)
	b := generate(t, 2)

	ga, err := a.Grids()
	require.NoError(t, err)
	gb, err := b.Grids()
	require.NoError(t, err)

	assert.NotEqual(t, ga, gb)
}

func TestGenerateStrip_UnseededIsReplayable(t *testing.T) {
	a, err := GenerateStrip(nil)
	require.NoError(t, err)
	b, err := GenerateStrip(nil)
	require.NoError(t, err)

	seedA, ok := a.Seed()
	require.True(t, ok)
	seedB, _ := b.Seed()
	assert.NotEqual(t, seedA, seedB, "back-to-back unseeded strips must use different seeds")

	replay := generate(t, seedA)
	assert.Equal(t, a.String(), replay.String())
}

func TestGenerate_ExplicitSource(t *testing.T) {
	st, err := Generate(NewSource(77))
	require.NoError(t, err)
	require.NoError(t, Validate(st))

	_, ok := st.Seed()
	assert.False(t, ok)

	// Same seed through GenerateStrip draws the same sequence.
	assert.Equal(t, generate(t, 77).String(), st.String())
}

func TestGenerate_UnshuffledSource(t *testing.T) {
	// With an identity shuffle, phase one hands each ticket the lowest
	// number of every group in turn.
	st, err := Generate(lastIndex)
	require.NoError(t, err)
	require.NoError(t, Validate(st))

	assert.Contains(t, st.Ticket(1).Numbers(0), 1)
	assert.Contains(t, st.Ticket(6).Numbers(0), 6)
}

func TestStrip_TicketLookup(t *testing.T) {
	st := generate(t, 9)

	assert.Nil(t, st.Ticket(0))
	assert.Nil(t, st.Ticket(7))
	for n := 1; n <= TicketsPerStrip; n++ {
		require.NotNil(t, st.Ticket(n))
		assert.Equal(t, n, st.Ticket(n).Number())
	}
}

func newEmptyStrip() *Strip {
	st := &Strip{}
	for i := range st.tickets {
		st.tickets[i] = NewTicket(i + 1)
	}
	return st
}

// fill inserts the three lowest numbers of each column into t.
func fill(t *testing.T, tk *Ticket, columns ...int) {
	t.Helper()
	for _, col := range columns {
		lo, _ := ColumnRange(col)
		for k := 0; k < MaxPerColumn; k++ {
			require.NoError(t, tk.Insert(col, lo+k))
		}
	}
}

func TestSpread_DrainedPool(t *testing.T) {
	pool := NewNumberPool(firstIndex)
	for pool.Remaining() > 0 {
		_, _, err := pool.PopFirstFromAnyNonEmptyGroup()
		require.NoError(t, err)
	}

	err := newEmptyStrip().spread(pool)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPoolExhausted))
	assert.True(t, IsInvariantViolation(err))

	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "spread", inv.Op)
	assert.Equal(t, 8, inv.Column)
}

func TestSpread_NoEligibleTicket(t *testing.T) {
	st := newEmptyStrip()
	for _, tk := range st.tickets[:5] {
		fill(t, tk, 3, 4, 5, 6, 7)
		require.True(t, tk.IsComplete())
	}
	// 78 numbers placed leaves 12, so the first turn goes to group 2,
	// which the only incomplete ticket already has full.
	fill(t, st.tickets[5], 2)

	err := st.spread(NewNumberPool(firstIndex))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEligibleTicket))

	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, 2, inv.Column)
	assert.Contains(t, err.Error(), "spread")
}

func TestSpread_NothingLeftToPlace(t *testing.T) {
	st := newEmptyStrip()
	for _, tk := range st.tickets {
		fill(t, tk, 3, 4, 5, 6, 7)
	}
	pool := NewNumberPool(firstIndex)

	require.NoError(t, st.spread(pool))
	assert.Equal(t, MaxNumber, pool.Remaining())
}

func BenchmarkGenerateStrip(b *testing.B) {
	for i := 0; i < b.N; i++ {
		seed := uint64(i)
		if _, err := GenerateStrip(&seed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateStripUnseeded(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GenerateStrip(nil); err != nil {
			b.Fatal(err)
		}
	}
}
