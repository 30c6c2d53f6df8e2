package engine

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Spawn places a new tile on a uniformly chosen empty cell: 4 with
// probability spawn4Prob, otherwise 2. It returns the new grid, the cell
// that was filled, and false if the grid had no empty cell (in which case
// the grid is returned unchanged).
func Spawn(board Grid, rng Rand, spawn4Prob float64) (Grid, Cell, bool) {
	emptyCells := board.EmptyCells()
	if len(emptyCells) == 0 {
		return board, Cell{}, false
	}

	// Pick random empty cell
	cell := emptyCells[rng.Intn(len(emptyCells))]

	value := 2
	if rng.Float64() < spawn4Prob {
		value = 4
	}

	board[cell.Row][cell.Col] = value
	return board, cell, true
}
