package game

import (
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// animationPhase represents the current phase of animation.
type animationPhase int

const (
	phaseNone animationPhase = iota
	phaseSlide
	phasePop
)

// tileAnimation is one tile travelling across the board.
type tileAnimation struct {
	value    int
	from, to engine.Cell
	merged   bool
}

// animator plays the slide of every tile, then pops the spawned tile.
type animator struct {
	phase    animationPhase
	ticks    int
	progress float64 // 0.0 → 1.0 within the current phase
	tiles    []tileAnimation
	spawned  *engine.Cell
}

// start begins the slide phase for an accepted move.
func (a *animator) start(out engine.MoveOutcome) {
	a.tiles = a.tiles[:0]
	for _, m := range out.Moves {
		a.tiles = append(a.tiles, tileAnimation{
			value:  m.Value,
			from:   m.From,
			to:     m.To,
			merged: m.Merged,
		})
	}
	a.spawned = out.Spawned
	a.phase = phaseSlide
	a.ticks = 0
	a.progress = 0
}

// stop drops any animation in flight.
func (a *animator) stop() {
	a.phase = phaseNone
	a.ticks = 0
	a.progress = 0
	a.tiles = nil
	a.spawned = nil
}

func (a *animator) active() bool {
	return a.phase != phaseNone
}

// update advances the animation by one tick.
// Returns true if animation is still in progress.
func (a *animator) update() bool {
	var duration int
	switch a.phase {
	case phaseSlide:
		duration = slideAnimationDuration
	case phasePop:
		duration = popAnimationDuration
	default:
		return false
	}

	a.ticks++
	a.progress = min(float64(a.ticks)/float64(duration), 1.0)

	if a.ticks >= duration {
		a.finishPhase()
	}
	return a.active()
}

// finishPhase moves from slide to pop, or ends the animation.
func (a *animator) finishPhase() {
	if a.phase == phaseSlide && a.spawned != nil {
		a.phase = phasePop
		a.ticks = 0
		a.progress = 0
		a.tiles = nil
		return
	}
	a.stop()
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position returns the interpolated board position of a sliding tile.
func (t tileAnimation) position(progress float64) (row, col float64) {
	p := easeOutQuad(progress)
	row = float64(t.from.Row) + float64(t.to.Row-t.from.Row)*p
	col = float64(t.from.Col) + float64(t.to.Col-t.from.Col)*p
	return row, col
}
