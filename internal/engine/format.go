package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the grid as right-aligned columns, "." for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if g[r][c] != 0 {
				cell = strconv.Itoa(g[r][c])
			}
			fmt.Fprintf(&sb, "%*s", width, cell)
		}
	}
	return sb.String()
}

// ParseGrid parses a board written as rows separated by "/" or newlines,
// with cells separated by commas or spaces. "." and "0" are empty.
//
//	ParseGrid("2,2,.,./.,.,.,./.,.,.,./.,.,.,4")
func ParseGrid(s string) (Grid, error) {
	var g Grid

	rows := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '\n' })
	if len(rows) != Size {
		return g, fmt.Errorf("engine: grid needs %d rows, got %d", Size, len(rows))
	}

	for r, line := range rows {
		cells := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(cells) != Size {
			return g, fmt.Errorf("engine: row %d needs %d cells, got %d", r, Size, len(cells))
		}
		for c, cell := range cells {
			if cell == "." {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return g, fmt.Errorf("engine: row %d col %d: %w", r, c, err)
			}
			g[r][c] = v
		}
	}

	if err := g.Validate(); err != nil {
		return g, err
	}
	return g, nil
}
