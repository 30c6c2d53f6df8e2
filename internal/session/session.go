// Package session runs one game of 2048 on top of the engine: it owns the
// board, the cumulative score and the best score, and moves through the
// Idle, MoveAccepted, MoveRejected and Terminal states as moves arrive.
//
// A Session is not safe for concurrent use. Callers serialize moves, which the
// TUI does through its update loop.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// State is the position of a session in its move state machine.
type State int

const (
	StateIdle State = iota
	StateMoveAccepted
	StateMoveRejected
	StateTerminal
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoveAccepted:
		return "accepted"
	case StateMoveRejected:
		return "rejected"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// BestStore persists the best score between runs.
type BestStore interface {
	LoadBest() (int, error)
	SaveBest(score int) error
}

// GameSummary describes a finished game.
type GameSummary struct {
	GameID  string
	Preset  string
	Score   int
	MaxTile int
	Moves   int
	Won     bool
}

// GameRecorder receives each finished game once.
type GameRecorder interface {
	RecordGame(summary GameSummary) error
}

// Snapshot is a copy of the session state. The grid is a value, so holding a
// snapshot never observes later moves.
type Snapshot struct {
	GameID   string
	Grid     engine.Grid
	Score    int
	Best     int
	Moves    int
	GameOver bool
	Won      bool
	CanUndo  bool
	State    State
}

// Result reports what a call to Move did.
type Result struct {
	State    State
	Accepted bool
	Outcome  engine.MoveOutcome
	NewBest  bool // Best score increased with this move
	NewWin   bool // Win tile reached for the first time this game
}

// Session holds the state of one game and the best score across restarts.
type Session struct {
	eng      *engine.Engine
	logger   *log.Logger
	store    BestStore
	recorder GameRecorder
	tracer   trace.Tracer
	preset   string

	gameID   string
	grid     engine.Grid
	score    int
	best     int
	moves    int
	gameOver bool
	won      bool
	canUndo  bool
	state    State
	recorded bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for persistence warnings and move traces.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithBestStore sets where the best score is loaded from and saved to.
func WithBestStore(store BestStore) Option {
	return func(s *Session) { s.store = store }
}

// WithRecorder sets the sink for finished games.
func WithRecorder(r GameRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithTracer sets the tracer used for move and restart spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithPreset names the rule preset, stored with finished games.
func WithPreset(name string) Option {
	return func(s *Session) { s.preset = name }
}

// New creates a session and starts its first game. The best score is loaded
// from the store; a failed or corrupt load starts from 0.
func New(eng *engine.Engine, opts ...Option) *Session {
	s := &Session{
		eng:    eng,
		logger: log.New(io.Discard),
		tracer: noop.NewTracerProvider().Tracer("session"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.best = s.loadBest()
	s.start(eng.NewBoard(), 0)
	return s
}

func (s *Session) loadBest() int {
	if s.store == nil {
		return 0
	}
	best, err := s.store.LoadBest()
	if err != nil {
		s.logger.Warn("cannot load best score, starting from 0", "err", err)
		return 0
	}
	if best < 0 {
		s.logger.Warn("ignoring negative best score", "best", best)
		return 0
	}
	return best
}

func (s *Session) start(board engine.Grid, score int) {
	s.gameID = uuid.NewString()
	s.grid = board
	s.score = score
	s.moves = 0
	s.gameOver = s.eng.IsTerminal(board)
	s.won = s.eng.HasWon(board)
	s.canUndo = false
	s.recorded = false
	s.state = StateIdle
	if s.gameOver {
		s.state = StateTerminal
	}
	s.raiseBest()
}

// Move applies one move. Terminal sessions ignore it. A move that changes
// nothing leaves the grid and score untouched and spawns no tile.
func (s *Session) Move(ctx context.Context, dir engine.Direction) Result {
	_, span := s.tracer.Start(ctx, "session.Move", trace.WithAttributes(
		attribute.String("game.id", s.gameID),
		attribute.String("move.direction", dir.String()),
	))
	defer span.End()

	if s.state == StateTerminal {
		span.SetAttributes(attribute.Bool("move.ignored", true))
		return Result{
			State: s.state,
			Outcome: engine.MoveOutcome{
				Grid:     s.grid,
				GameOver: s.gameOver,
				Won:      s.won,
			},
		}
	}

	out := s.eng.ApplyMove(s.grid, dir)
	if !out.Moved {
		s.state = StateMoveRejected
		s.canUndo = false
		span.SetAttributes(attribute.Bool("move.accepted", false))
		s.logger.Debug("move rejected", "dir", dir)
		out.GameOver = s.gameOver
		out.Won = s.won
		return Result{State: s.state, Outcome: out}
	}

	s.grid = out.Grid
	s.score += out.Score
	s.moves++
	s.canUndo = true
	s.gameOver = out.GameOver

	res := Result{Accepted: true, Outcome: out}
	if out.Won && !s.won {
		res.NewWin = true
	}
	// Won stays latched for the rest of the game even once the win tile
	// merges into a larger one.
	s.won = s.won || out.Won
	res.NewBest = s.raiseBest()

	s.state = StateMoveAccepted
	if s.gameOver {
		s.state = StateTerminal
		s.record()
	}
	res.State = s.state

	span.SetAttributes(
		attribute.Bool("move.accepted", true),
		attribute.Int("move.score", out.Score),
		attribute.Int("game.score", s.score),
		attribute.Bool("game.over", s.gameOver),
	)
	s.logger.Debug("move accepted", "dir", dir, "gained", out.Score, "score", s.score, "state", s.state)
	return res
}

// raiseBest lifts the best score to the current score and persists it.
// Other sessions may share the store, so a higher stored best is adopted
// after saving. Reports whether the best score changed.
func (s *Session) raiseBest() bool {
	if s.score <= s.best {
		return false
	}
	s.best = s.score
	if s.store == nil {
		return true
	}
	if err := s.store.SaveBest(s.best); err != nil {
		s.logger.Warn("cannot save best score", "best", s.best, "err", err)
		return true
	}
	if stored, err := s.store.LoadBest(); err == nil && stored > s.best {
		s.best = stored
	}
	return true
}

func (s *Session) record() {
	if s.recorder == nil || s.recorded {
		return
	}
	s.recorded = true
	summary := s.Summary()
	if err := s.recorder.RecordGame(summary); err != nil {
		s.logger.Warn("cannot record game", "game", summary.GameID, "err", err)
	}
}

// Restart begins a new game. The best score is kept. An unfinished game with
// a non-zero score is recorded before it is discarded.
func (s *Session) Restart(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "session.Restart", trace.WithAttributes(
		attribute.String("game.id", s.gameID),
		attribute.Int("game.score", s.score),
	))
	defer span.End()

	if s.score > 0 {
		s.record()
	}
	s.start(s.eng.NewBoard(), 0)
	s.logger.Debug("game restarted", "game", s.gameID, "best", s.best)
}

// Resume replaces the current game with the given board and score, as when
// continuing from a saved position.
func (s *Session) Resume(board engine.Grid, score int) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("session: cannot resume: %w", err)
	}
	if score < 0 {
		return fmt.Errorf("session: cannot resume: negative score %d", score)
	}
	s.start(board, score)
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		GameID:   s.gameID,
		Grid:     s.grid,
		Score:    s.score,
		Best:     s.best,
		Moves:    s.moves,
		GameOver: s.gameOver,
		Won:      s.won,
		CanUndo:  s.canUndo,
		State:    s.state,
	}
}

// Summary describes the current game for recording.
func (s *Session) Summary() GameSummary {
	return GameSummary{
		GameID:  s.gameID,
		Preset:  s.preset,
		Score:   s.score,
		MaxTile: s.grid.MaxTile(),
		Moves:   s.moves,
		Won:     s.won,
	}
}

// Grid returns the current board.
func (s *Session) Grid() engine.Grid { return s.grid }

// Score returns the score of the current game.
func (s *Session) Score() int { return s.score }

// Best returns the best score seen, including earlier runs.
func (s *Session) Best() int { return s.best }

// State returns the current state-machine state.
func (s *Session) State() State { return s.state }

// Rules returns the rules the session plays under.
func (s *Session) Rules() engine.Rules { return s.eng.Rules() }

// Preset returns the preset name given at construction.
func (s *Session) Preset() string { return s.preset }
