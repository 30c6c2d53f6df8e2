package game

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// firstCellRand always spawns a 2 in the first empty cell.
type firstCellRand struct{}

func (firstCellRand) Intn(int) int     { return 0 }
func (firstCellRand) Float64() float64 { return 0.5 }

func newTestGame(t *testing.T, rng engine.Rand) *Game {
	t.Helper()
	preset := config.Default().Classic()
	sess := session.New(engine.New(preset.Rules(), rng), session.WithPreset(preset.Name))
	g := New(context.Background(), sess, preset)
	g.Reset(core.DefaultConfig())
	return g
}

func resume(t *testing.T, g *Game, board string) {
	t.Helper()
	grid, err := engine.ParseGrid(board)
	if err != nil {
		t.Fatalf("ParseGrid(%q): %v", board, err)
	}
	if err := g.Session().Resume(grid, 0); err != nil {
		t.Fatalf("Resume(): %v", err)
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps with no input until the current animation is over.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Animating(); i++ {
		if i > 100 {
			t.Fatal("animation never finished")
		}
		g.Step(frame())
	}
}

func TestResetStartsFreshBoard(t *testing.T) {
	g := newTestGame(t, firstCellRand{})

	snap := g.Snapshot()
	if snap.Board.TileCount() != 2 {
		t.Errorf("fresh board has %d tiles, expected 2", snap.Board.TileCount())
	}
	if snap.Score != 0 || snap.State != StatePlaying || snap.Target != 2048 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestStepAppliesMove(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 2 . . / . . . . / . . . . / . . . .")

	res := g.Step(frame(core.ActionLeft))
	if !res.Moved || res.State.Score != 4 {
		t.Fatalf("Step(Left) = %+v, expected an accepted move worth 4", res)
	}
	if !g.Animating() || g.Snapshot().State != StateAnimating {
		t.Error("accepted move should start an animation")
	}
}

func TestInputIgnoredWhileAnimating(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 2 . . / . . . . / . . . . / . . . .")

	g.Step(frame(core.ActionLeft))
	board := g.Snapshot().Board

	if res := g.Step(frame(core.ActionDown)); res.Moved {
		t.Error("move accepted during animation")
	}
	if g.Snapshot().Board != board {
		t.Error("board changed during animation")
	}

	settle(t, g)
	if res := g.Step(frame(core.ActionDown)); !res.Moved {
		t.Error("move rejected after animation finished")
	}
}

func TestRejectedMoveDoesNotAnimate(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 4 . . / . . . . / . . . . / . . . .")

	if res := g.Step(frame(core.ActionLeft)); res.Moved {
		t.Error("move that changes nothing should be rejected")
	}
	if g.Animating() {
		t.Error("rejected move should not animate")
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 2 . . / . . . . / . . . . / . . . .")

	g.Step(frame(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game should be paused")
	}
	if res := g.Step(frame(core.ActionLeft)); res.Moved {
		t.Error("paused game accepted a move")
	}

	g.Step(frame(core.ActionPause))
	if res := g.Step(frame(core.ActionLeft)); !res.Moved {
		t.Error("unpaused game rejected a move")
	}
}

func TestWinOverlayAndContinue(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "1024 1024 . . / . . . . / . . . . / . . . .")

	g.Step(frame(core.ActionLeft))
	if !g.State().Won || g.Snapshot().State != StateWon {
		t.Fatalf("reaching 2048 should show the win overlay: %+v", g.Snapshot())
	}

	settle(t, g)
	if res := g.Step(frame(core.ActionDown)); res.Moved {
		t.Error("moves should wait until the win overlay is dismissed")
	}

	g.Step(frame(core.ActionContinue))
	if g.Snapshot().State == StateWon {
		t.Fatal("continue should dismiss the win overlay")
	}
	if res := g.Step(frame(core.ActionDown)); !res.Moved {
		t.Error("game should continue after the win")
	}
	if !g.State().Won {
		t.Error("won flag should stay set after continuing")
	}
}

func TestGameOver(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, ". 4 2 4 / 2 4 2 4 / 4 2 4 2 / 2 4 2 4")

	g.Step(frame(core.ActionLeft))
	settle(t, g)

	if !g.State().GameOver || g.Snapshot().State != StateGameOver {
		t.Fatalf("expected game over, got %+v", g.Snapshot())
	}
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if res := g.Step(frame(a)); res.Moved {
			t.Errorf("finished game accepted %v", a)
		}
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver || g.Snapshot().Board.TileCount() != 2 {
		t.Error("restart should begin a new game")
	}
}

func TestRestartKeepsBest(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 2 4 4 / . . . . / . . . . / . . . .")

	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionRestart))

	state := g.State()
	if state.Score != 0 || state.Best != 12 {
		t.Errorf("after restart score/best = %d/%d, expected 0/12", state.Score, state.Best)
	}
	if g.Animating() {
		t.Error("restart should cancel animations")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	g.Resize(20, 10)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %v, expected %v", g.Snapshot().State, StatePausedSmall)
	}
	if res := g.Step(frame(core.ActionLeft, core.ActionRight)); res.Moved {
		t.Error("small window accepted a move")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("render should explain the small window:\n%s", screen.String())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, "2 2 . . / . . . . / . . . . / . . . 2048")

	g.Step(frame(core.ActionLeft))
	settle(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Classic 2048", "Score: 4", "Best: 4", "reach 2048", "2048", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, ". 4 2 4 / 2 4 2 4 / 4 2 4 2 / 2 4 2 4")
	g.Step(frame(core.ActionLeft))
	settle(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Errorf("game over overlay missing:\n%s", screen.String())
	}
}

func TestRenderDuringSlide(t *testing.T) {
	g := newTestGame(t, firstCellRand{})
	resume(t, g, ". . . 16 / . . . . / . . . . / . . . .")
	g.Step(frame(core.ActionLeft))

	screen := core.NewScreen(80, 24)
	for g.Animating() {
		g.Render(screen)
		if strings.Count(screen.String(), "16") != 1 {
			t.Fatalf("sliding tile should be drawn exactly once:\n%s", screen.String())
		}
		g.Step(frame())
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, rand.New(rand.NewSource(7)))
		actions := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
		for i := 0; i < 400; i++ {
			g.Step(frame(actions[i%len(actions)]))
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a.Board != b.Board || a.Score != b.Score || a.Tick != b.Tick {
		t.Errorf("replays diverged:\n%s\n%s", a.Board, b.Board)
	}
}
