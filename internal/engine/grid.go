// Package engine implements the board rules of the 2048 sliding puzzle:
// sliding and merging tiles, spawning new tiles, and detecting terminal
// and winning boards.
//
// The package is pure. Apart from the injected random source used for
// spawning, every function returns a new Grid and never retains or mutates
// the one it was given.
package engine

import (
	"errors"
	"fmt"
)

// Size is the board dimension.
const Size = 4

// ErrInvalidTile is returned by Validate for values that are not powers of two.
var ErrInvalidTile = errors.New("engine: invalid tile value")

// Row is a single line of cells. Zero means empty.
type Row [Size]int

// Grid is a Size x Size board indexed as [row][col]. Zero means empty.
// Grid is a value type: assigning or passing it copies every cell.
type Grid [Size][Size]int

// Cell addresses a board position.
type Cell struct {
	Row int
	Col int
}

// NewGrid returns an empty board.
func NewGrid() Grid {
	return Grid{}
}

// Clone returns a copy of the grid.
func (g Grid) Clone() Grid {
	return g
}

// At returns the value at c.
func (g Grid) At(c Cell) int {
	return g[c.Row][c.Col]
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell reports whether at least one cell is empty.
func (g Grid) HasEmptyCell() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// Contains reports whether any cell holds exactly value.
func (g Grid) Contains(value int) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	return Size*Size - len(g.EmptyCells())
}

// Validate checks that every non-empty cell is a power of two >= 2.
func (g Grid) Validate() error {
	for r := range Size {
		for c := range Size {
			if v := g[r][c]; v != 0 && !isTileValue(v) {
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
		}
	}
	return nil
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// transpose swaps rows and columns.
func transpose[T any](m [Size][Size]T) [Size][Size]T {
	var out [Size][Size]T
	for r := range Size {
		for c := range Size {
			out[r][c] = m[c][r]
		}
	}
	return out
}

// reverse mirrors a line end to end.
func reverse[T any](line [Size]T) [Size]T {
	var out [Size]T
	for i := range Size {
		out[i] = line[Size-1-i]
	}
	return out
}
