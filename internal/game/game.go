// Package game adapts a 2048 session to the tick-driven loop of the terminal
// platform: it turns input frames into moves, plays slide and pop animations,
// and renders the board into a core.Screen.
package game

import (
	"context"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Game is the playable 2048 game for one player.
type Game struct {
	ctx    context.Context
	sess   *session.Session
	preset config.Preset
	tick   uint64

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	showWin  bool // Win overlay visible until the player continues or restarts

	anim animator
}

// New creates a game that plays sess under the given preset.
// ctx is attached to the session's move spans.
func New(ctx context.Context, sess *session.Session, preset config.Preset) *Game {
	return &Game{
		ctx:    ctx,
		sess:   sess,
		preset: preset,
	}
}

// ID returns the preset identifier.
func (g *Game) ID() string {
	return g.preset.Name
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.preset.Title != "" {
		return g.preset.Title
	}
	return "2048"
}

// Session returns the underlying session.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Reset starts a new game sized for the given screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.showWin = false
	g.anim.stop()

	g.sess.Restart(g.ctx)
	g.checkScreenSize()
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.sess.Restart(g.ctx)
		g.showWin = false
		g.anim.stop()
		return core.StepResult{State: g.State()}
	}

	// One move at a time: input is dropped while tiles are still moving.
	if g.anim.update() {
		return core.StepResult{State: g.State()}
	}

	if g.showWin {
		if in.Has(core.ActionContinue) || in.Has(core.ActionConfirm) {
			g.showWin = false
		}
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok || g.sess.State() == session.StateTerminal {
		return core.StepResult{State: g.State()}
	}

	res := g.sess.Move(g.ctx, dir)
	if res.Accepted {
		g.anim.start(res.Outcome)
		if res.NewWin {
			g.showWin = true
		}
	}

	return core.StepResult{State: g.State(), Moved: res.Accepted}
}

// directionFor maps the first directional action in the frame to a direction.
func directionFor(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.sess.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Best:     snap.Best,
		GameOver: snap.GameOver,
		Won:      snap.Won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Animating reports whether a move animation is in flight.
func (g *Game) Animating() bool {
	return g.anim.active()
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL or drag: Move | P: Pause | R: Restart | Q: Quit"
}
