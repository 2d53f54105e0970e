package strip

// NumberPool holds the numbers 1-90 that have not yet been placed on a
// ticket, grouped by column. Each group keeps the order produced by a single
// shuffle of the whole range and is only ever consumed from the front.
type NumberPool struct {
	groups [Columns][]int
}

// NewNumberPool shuffles 1-90 once and partitions the result into the nine
// column groups, preserving the shuffled order inside each group.
func NewNumberPool(rs RandomSource) *NumberPool {
	all := make([]int, MaxNumber)
	for i := range all {
		all[i] = i + 1
	}
	Shuffle(rs, all)

	p := &NumberPool{}
	for col := 0; col < Columns; col++ {
		p.groups[col] = make([]int, 0, ColumnSize(col))
	}
	for _, n := range all {
		col := ColumnFor(n)
		p.groups[col] = append(p.groups[col], n)
	}
	return p
}

// Len returns how many numbers remain in a group. Out of range columns report
// zero.
func (p *NumberPool) Len(column int) int {
	if !validColumn(column) {
		return 0
	}
	return len(p.groups[column])
}

// IsEmpty reports whether a group has no numbers left.
func (p *NumberPool) IsEmpty(column int) bool {
	return p.Len(column) == 0
}

// Remaining returns how many numbers remain across all groups.
func (p *NumberPool) Remaining() int {
	total := 0
	for _, g := range p.groups {
		total += len(g)
	}
	return total
}

// Group returns a copy of the numbers remaining in a group, in pop order.
func (p *NumberPool) Group(column int) []int {
	if !validColumn(column) {
		return nil
	}
	return append([]int(nil), p.groups[column]...)
}

// PopFirst removes and returns the first remaining number of a group.
func (p *NumberPool) PopFirst(column int) (int, error) {
	if !validColumn(column) {
		return 0, invariant("pop", 0, column, ErrInvalidColumn)
	}
	g := p.groups[column]
	if len(g) == 0 {
		return 0, invariant("pop", 0, column, ErrEmptyGroup)
	}
	n := g[0]
	p.groups[column] = g[1:]
	return n, nil
}

// FirstNonEmptyGroup returns the lowest column whose group still has numbers.
func (p *NumberPool) FirstNonEmptyGroup() (int, bool) {
	for col, g := range p.groups {
		if len(g) > 0 {
			return col, true
		}
	}
	return 0, false
}

// PopFirstFromAnyNonEmptyGroup scans groups in ascending column order and pops
// the first number of the first group that still has members. It returns the
// number and the column it came from.
func (p *NumberPool) PopFirstFromAnyNonEmptyGroup() (number, column int, err error) {
	col, ok := p.FirstNonEmptyGroup()
	if !ok {
		return 0, 0, invariant("pop any", 0, -1, ErrPoolExhausted)
	}
	n, err := p.PopFirst(col)
	if err != nil {
		return 0, 0, err
	}
	return n, col, nil
}
