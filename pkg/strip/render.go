package strip

import (
	"fmt"
	"strings"
)

const (
	cellWidth   = 4
	innerWidth  = 1 + Columns*cellWidth
	blankMarker = "--"
)

var border = "+" + strings.Repeat("-", innerWidth) + "+"

// Render formats a laid-out ticket as a fixed-width text grid:
//
//	+-------------------------------------+
//	| --  12  --  31  --  50  --  70  80  |
//	|  5  --  27  39  45  --  61  --  --  |
//	| --  19  --  --  48  58  69  --  90  |
//	+-------------------------------------+
//
// Each cell is right-aligned to width 2 and followed by two spaces; blanks
// print as "--".
func Render(t *Ticket) (string, error) {
	rows, err := t.Rows()
	if err != nil {
		return "", err
	}
	return RenderGrid(rows), nil
}

// RenderGrid formats rows the same way Render does.
func RenderGrid(rows Grid) string {
	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString("| ")
		for _, v := range row {
			if v == Blank {
				fmt.Fprintf(&b, "%2s  ", blankMarker)
			} else {
				fmt.Fprintf(&b, "%2d  ", v)
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	b.WriteByte('\n')
	return b.String()
}

// RenderStrip renders every ticket of a strip under a "Ticket N" heading.
func RenderStrip(st *Strip) (string, error) {
	var b strings.Builder
	for _, t := range st.tickets {
		grid, err := Render(t)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Ticket %d\n", t.Number())
		b.WriteString(grid)
	}
	return b.String(), nil
}
