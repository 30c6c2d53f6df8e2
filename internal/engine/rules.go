package engine

// DefaultWinTile is the classic winning tile.
const DefaultWinTile = 2048

// DefaultSpawn4Prob is the chance that a spawned tile is a 4.
const DefaultSpawn4Prob = 0.10

// Rules holds the tunable parts of the game.
type Rules struct {
	// WinTile is the tile value that wins the game. Zero disables winning.
	WinTile int
	// Spawn4Prob is the probability (0.0-1.0) of spawning 4 instead of 2.
	Spawn4Prob float64
}

// DefaultRules returns the classic 2048 rules.
func DefaultRules() Rules {
	return Rules{
		WinTile:    DefaultWinTile,
		Spawn4Prob: DefaultSpawn4Prob,
	}
}

// IsTerminal reports whether no move is possible: the board is full and no
// cell equals its right or lower neighbour.
func IsTerminal(board Grid) bool {
	if board.HasEmptyCell() {
		return false
	}
	return !HasPossibleMerge(board)
}

// HasPossibleMerge reports whether any two adjacent tiles are equal.
// Checking right and down neighbours covers every adjacent pair once.
func HasPossibleMerge(board Grid) bool {
	for r := range Size {
		for c := range Size {
			val := board[r][c]
			if val == 0 {
				continue
			}
			if c < Size-1 && board[r][c+1] == val {
				return true
			}
			if r < Size-1 && board[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// HasWon reports whether a cell equals winTile exactly.
// A zero winTile never wins.
func HasWon(board Grid, winTile int) bool {
	if winTile <= 0 {
		return false
	}
	return board.Contains(winTile)
}
