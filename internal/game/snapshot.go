package game

import (
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// StateType represents the current game state.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateAnimating   StateType = "animating"
	StateWon         StateType = "won"
	StateGameOver    StateType = "game_over"
	StatePaused      StateType = "paused"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Preset  string
	Target  int // Win tile, 0 when endless
	Score   int
	Best    int
	Moves   int
	Board   engine.Grid
	MaxTile int
	State   StateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := g.sess.Snapshot()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case snap.GameOver:
		state = StateGameOver
	case g.showWin:
		state = StateWon
	case g.anim.active():
		state = StateAnimating
	}

	return Snapshot{
		Tick:    g.tick,
		Preset:  g.preset.Name,
		Target:  g.preset.WinTile,
		Score:   snap.Score,
		Best:    snap.Best,
		Moves:   snap.Moves,
		Board:   snap.Grid,
		MaxTile: snap.Grid.MaxTile(),
		State:   state,
	}
}
