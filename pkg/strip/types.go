package strip

const (
	// Columns is the number of columns on a ticket, one per decade group.
	Columns = 9

	// Rows is the number of printed rows on a ticket.
	Rows = 3

	// TicketsPerStrip is the number of tickets sharing the numbers 1-90.
	TicketsPerStrip = 6

	// NumbersPerTicket is the number of non-blank cells on a complete ticket.
	NumbersPerTicket = 15

	// NumbersPerRow is the number of non-blank cells in each printed row.
	NumbersPerRow = 5

	// MaxPerColumn is the maximum number of numbers a ticket column can hold.
	MaxPerColumn = 3

	// MaxNumber is the highest number on a strip.
	MaxNumber = 90

	// Blank marks an empty grid cell. Numbers start at 1, so zero is never a
	// valid number.
	Blank = 0
)

// Grid is a ticket laid out as printed rows. Blank cells hold Blank.
type Grid [Rows][Columns]int

// ColumnFor returns the column a number belongs to. 90 is folded into the
// 80s column.
func ColumnFor(number int) int {
	switch {
	case number <= 9:
		return 0
	case number >= 80:
		return 8
	default:
		return number / 10
	}
}

// ColumnRange returns the inclusive bounds of the numbers a column may hold.
func ColumnRange(column int) (low, high int) {
	switch column {
	case 0:
		return 1, 9
	case Columns - 1:
		return 80, MaxNumber
	default:
		return column * 10, column*10 + 9
	}
}

// ColumnSize returns how many of the numbers 1-90 belong to a column.
func ColumnSize(column int) int {
	low, high := ColumnRange(column)
	return high - low + 1
}

func validColumn(column int) bool {
	return column >= 0 && column < Columns
}
