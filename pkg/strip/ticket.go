package strip

import (
	"fmt"
	"slices"
)

// Ticket is one 3x9 ticket of a strip. Columns start as unordered lists of
// numbers and become exactly Rows slots (numbers and blanks) once laid out.
type Ticket struct {
	number  int
	columns [Columns][]int
	count   int
}

// NewTicket creates an empty ticket. number is its 1-based position in the
// strip.
func NewTicket(number int) *Ticket {
	t := &Ticket{number: number}
	for col := range t.columns {
		t.columns[col] = make([]int, 0, Rows)
	}
	return t
}

// Number returns the ticket's 1-based position in its strip.
func (t *Ticket) Number() int {
	return t.number
}

// Count returns how many numbers the ticket holds, ignoring blanks.
func (t *Ticket) Count() int {
	return t.count
}

// Insert appends number to a column without reordering it.
func (t *Ticket) Insert(column, number int) error {
	if !validColumn(column) {
		return invariant("insert", t.number, column, ErrInvalidColumn)
	}
	if low, high := ColumnRange(column); number < low || number > high {
		return invariant("insert", t.number, column, fmt.Errorf("%w: %d", ErrInvalidNumber, number))
	}
	if t.IsColumnFull(column) {
		return invariant("insert", t.number, column, ErrColumnFull)
	}
	if t.IsComplete() {
		return invariant("insert", t.number, column, ErrTicketFull)
	}
	t.columns[column] = append(t.columns[column], number)
	t.count++
	return nil
}

// ColumnCount returns how many numbers a column holds, ignoring blanks.
func (t *Ticket) ColumnCount(column int) int {
	if !validColumn(column) {
		return 0
	}
	n := 0
	for _, v := range t.columns[column] {
		if v != Blank {
			n++
		}
	}
	return n
}

// IsColumnFull reports whether a column holds MaxPerColumn numbers.
func (t *Ticket) IsColumnFull(column int) bool {
	return t.ColumnCount(column) == MaxPerColumn
}

// IsComplete reports whether the ticket holds NumbersPerTicket numbers.
func (t *Ticket) IsComplete() bool {
	return t.count == NumbersPerTicket
}

// Column returns a copy of a column's slots, top to bottom once laid out.
func (t *Ticket) Column(column int) []int {
	if !validColumn(column) {
		return nil
	}
	return slices.Clone(t.columns[column])
}

// Numbers returns a copy of a column's numbers with blanks removed.
func (t *Ticket) Numbers(column int) []int {
	if !validColumn(column) {
		return nil
	}
	out := make([]int, 0, len(t.columns[column]))
	for _, v := range t.columns[column] {
		if v != Blank {
			out = append(out, v)
		}
	}
	return out
}

// Rows reads slot k of every column for each row k. Every column must hold
// exactly Rows slots.
func (t *Ticket) Rows() (Grid, error) {
	var g Grid
	for col, slots := range t.columns {
		if len(slots) != Rows {
			return Grid{}, invariant("rows", t.number, col,
				fmt.Errorf("%w: %d of %d slots", ErrIncompleteLayout, len(slots), Rows))
		}
		for row, v := range slots {
			g[row][col] = v
		}
	}
	return g, nil
}

// layout orders every column and pads it with blanks. A rolling row seed,
// started at a random row, decides where the blanks of 1- and 2-number
// columns go: each number placed in such a column lands one row below the
// previous one, wrapping around, so every row receives the same share.
func (t *Ticket) layout(rs RandomSource) error {
	seed := rs.IntN(Rows)

	for col := range t.columns {
		numbers := t.columns[col]
		switch len(numbers) {
		case 3:
			slices.Sort(numbers)

		case 1:
			next := (seed + 1) % Rows
			seed = next

			slots := []int{Blank, Blank, Blank}
			slots[next] = numbers[0]
			t.columns[col] = slots

		case 2:
			previous := seed % Rows
			seed = (seed + 1) % Rows

			first, second := numbers[0], numbers[1]
			if first > second {
				first, second = second, first
			}

			var slots []int
			switch previous {
			case 0:
				slots = []int{Blank, first, second}
			case 1:
				slots = []int{first, Blank, second}
			default:
				slots = []int{first, second, Blank}
			}
			t.columns[col] = slots

			// Advance again so the next column starts below this one's
			// second number.
			seed = (seed + 1) % Rows

		default:
			return invariant("layout", t.number, col,
				fmt.Errorf("%w: column holds %d numbers", ErrIncompleteLayout, len(numbers)))
		}
	}
	return nil
}

// String renders the ticket grid, or a one-line summary if it is not laid
// out yet.
func (t *Ticket) String() string {
	out, err := Render(t)
	if err != nil {
		return fmt.Sprintf("Ticket %d [count=%d, columns=%v]", t.number, t.count, t.columns)
	}
	return out
}
