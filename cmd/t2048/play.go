package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

var flagPreset string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game of 2048.

Without --preset the preset menu opens first. With --preset the game
starts right away and returns to the menu when you leave it.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  Mouse drag       - Swipe in the drag direction
  P                - Pause
  C/Enter          - Keep playing after a win
  R                - Restart
  B/Esc            - Back to menu (when paused or game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play --preset endless
  t2048 play --seed 42 --fps 30`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset to start with (see 't2048 presets')")
}

func runPlay(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx, telemetry.ModePlay)
	if err != nil {
		return err
	}
	defer e.close()

	var start *config.Preset
	if flagPreset != "" {
		preset, presetErr := e.cfg.Preset(flagPreset)
		if presetErr != nil {
			return fmt.Errorf("%w (run 't2048 presets' to list them)", presetErr)
		}
		start = &preset
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	e.logger.Debug("starting", "preset", flagPreset, "seed", flagSeed, "size", fmt.Sprintf("%dx%d", width, height))
	return tui.RunApp(ctx, e.deps(), cfg, start)
}
