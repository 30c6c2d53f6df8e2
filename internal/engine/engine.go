package engine

// MoveOutcome is the result of attempting a move.
type MoveOutcome struct {
	Grid     Grid
	Score    int  // Sum of merged values created by this move
	Moved    bool // Whether any tile changed position or value
	GameOver bool // Board is full with no merge left
	Won      bool // A tile equals the win threshold

	Moves   []TileMove
	Merged  []Cell
	Spawned *Cell // Nil when nothing was spawned
}

// Engine applies moves under a fixed rule set. It holds no board state;
// the only mutable part is its random source.
type Engine struct {
	rules Rules
	rng   Rand
}

// New creates an engine with the given rules and random source.
func New(rules Rules, rng Rand) *Engine {
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewBoard returns a fresh board with two spawned tiles.
func (e *Engine) NewBoard() Grid {
	board := NewGrid()
	board, _, _ = e.SpawnTile(board)
	board, _, _ = e.SpawnTile(board)
	return board
}

// SpawnTile adds one random tile to board. See Spawn.
func (e *Engine) SpawnTile(board Grid) (Grid, Cell, bool) {
	return Spawn(board, e.rng, e.rules.Spawn4Prob)
}

// ApplyMove slides board in dir, spawns a tile if anything moved, and
// reports the terminal and win state of the resulting board.
func (e *Engine) ApplyMove(board Grid, dir Direction) MoveOutcome {
	slid := Slide(board, dir)

	out := MoveOutcome{
		Grid:   slid.Grid,
		Score:  slid.Score,
		Moved:  slid.Moved,
		Moves:  slid.Moves,
		Merged: slid.Merged,
	}

	if slid.Moved {
		grid, cell, ok := e.SpawnTile(slid.Grid)
		out.Grid = grid
		if ok {
			out.Spawned = &cell
		}
	}

	out.GameOver = IsTerminal(out.Grid)
	out.Won = e.HasWon(out.Grid)
	return out
}

// IsTerminal reports whether board has no legal move.
func (e *Engine) IsTerminal(board Grid) bool {
	return IsTerminal(board)
}

// HasWon reports whether board holds the engine's win tile.
func (e *Engine) HasWon(board Grid) bool {
	return HasWon(board, e.rules.WinTile)
}
