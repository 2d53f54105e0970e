package strip

import "fmt"

// Validate checks every structural property of a finished strip and returns
// a *ValidationError listing all violations, or nil.
func Validate(st *Strip) error {
	grids, err := st.Grids()
	if err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	return ValidateGrids(grids)
}

// ValidateGrids runs the same checks as Validate over raw ticket grids, for
// example strips decoded from a file.
func ValidateGrids(grids []Grid) error {
	var problems []string
	report := func(format string, a ...any) {
		problems = append(problems, fmt.Sprintf(format, a...))
	}

	if len(grids) != TicketsPerStrip {
		report("strip has %d tickets, want %d", len(grids), TicketsPerStrip)
	}

	var seen [MaxNumber + 1]int
	for i, g := range grids {
		ticket := i + 1
		total := 0

		for row := 0; row < Rows; row++ {
			inRow := 0
			for col := 0; col < Columns; col++ {
				if g[row][col] != Blank {
					inRow++
				}
			}
			if inRow != NumbersPerRow {
				report("ticket %d row %d has %d numbers, want %d", ticket, row, inRow, NumbersPerRow)
			}
		}

		for col := 0; col < Columns; col++ {
			low, high := ColumnRange(col)
			inColumn := 0
			last := 0
			for row := 0; row < Rows; row++ {
				v := g[row][col]
				if v == Blank {
					continue
				}
				inColumn++
				total++
				if v < low || v > high {
					report("ticket %d column %d holds %d, outside %d-%d", ticket, col, v, low, high)
				} else {
					seen[v]++
				}
				if v <= last {
					report("ticket %d column %d is not ascending at row %d", ticket, col, row)
				}
				last = v
			}
			if inColumn < 1 || inColumn > MaxPerColumn {
				report("ticket %d column %d has %d numbers, want 1-%d", ticket, col, inColumn, MaxPerColumn)
			}
		}

		if total != NumbersPerTicket {
			report("ticket %d has %d numbers, want %d", ticket, total, NumbersPerTicket)
		}
	}

	for n := 1; n <= MaxNumber; n++ {
		switch seen[n] {
		case 1:
		case 0:
			report("number %d is missing", n)
		default:
			report("number %d appears %d times", n, seen[n])
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
