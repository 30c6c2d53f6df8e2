package tui

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// Deps holds what every screen of the app needs.
type Deps struct {
	Config config.Config
	Store  *storage.Store // Nil runs without persistence
	Logger *log.Logger
	Tracer trace.Tracer
}

// NewGame builds a game for the preset. A zero seed uses the current time.
func (d Deps) NewGame(ctx context.Context, preset config.Preset, seed int64) *game.Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tracer := d.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	opts := []session.Option{
		session.WithLogger(logger.With("preset", preset.Name)),
		session.WithTracer(tracer),
		session.WithPreset(preset.Name),
	}
	if d.Store != nil {
		opts = append(opts,
			session.WithBestStore(d.Store),
			session.WithRecorder(d.Store),
		)
	}

	eng := engine.New(preset.Rules(), rand.New(rand.NewSource(seed)))
	return game.New(ctx, session.New(eng, opts...), preset)
}

// LoadBest returns the persisted best score, or 0 without a store.
func (d Deps) LoadBest() int {
	if d.Store == nil {
		return 0
	}
	best, err := d.Store.LoadBest()
	if err != nil {
		if d.Logger != nil {
			d.Logger.Warn("could not load best score", "error", err)
		}
		return 0
	}
	return best
}

// appScreen identifies which screen AppModel is showing.
type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScoreboard
)

// AppModel manages the full flow: menu -> game -> menu, with the scoreboard
// reachable from the menu. It is the top-level model for local and SSH play.
type AppModel struct {
	ctx        context.Context
	deps       Deps
	config     core.RuntimeConfig
	screen     appScreen
	best       int
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewAppModel creates the app model. A non-nil start skips the menu and
// begins a game with that preset right away.
func NewAppModel(ctx context.Context, deps Deps, cfg core.RuntimeConfig, start *config.Preset) AppModel {
	best := deps.LoadBest()
	m := AppModel{
		ctx:    ctx,
		deps:   deps,
		config: cfg,
		best:   best,
		menu:   NewMenuModel(deps.Config.AllPresets(), best, cfg.ScreenW, cfg.ScreenH),
	}
	if start != nil {
		m.newGame(*start)
	}
	return m
}

// Init starts the game loop when the app opens straight into a game.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// newGame switches to a game with the preset without starting its loop.
func (m *AppModel) newGame(preset config.Preset) {
	g := m.deps.NewGame(m.ctx, preset, m.config.Seed)
	gm := NewGameModel(g, m.config)
	m.gameModel = &gm
	m.screen = screenGame
}

// startGame switches to a fresh game and starts its tick loop.
func (m *AppModel) startGame(preset config.Preset) tea.Cmd {
	m.newGame(preset)
	return m.gameModel.Init()
}

// backToMenu rebuilds the menu so its header shows the latest best score.
func (m *AppModel) backToMenu() {
	m.screen = screenMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.deps.Config.AllPresets(), m.best, m.config.ScreenW, m.config.ScreenH)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		start := m.startGame(*m.menu.Selected())
		return m, start

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.deps.Store, m.deps.Config.AllPresets(), m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScoreboard
		return m, sb.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}
	m.best = max(m.best, m.gameModel.State().Best)

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m AppModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.screen == screenGame && m.gameModel != nil:
		return m.gameModel.View()
	case m.screen == screenScoreboard && m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// IsQuitting returns true once the player has quit.
func (m AppModel) IsQuitting() bool {
	return m.quitting
}

// RunApp runs the app in the local terminal until the player quits.
func RunApp(ctx context.Context, deps Deps, cfg core.RuntimeConfig, start *config.Preset) error {
	p := tea.NewProgram(
		NewAppModel(ctx, deps, cfg, start),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}
