// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048                    - Pick a preset from the menu and play
//	t2048 play [--preset p]  - Play a preset directly
//	t2048 presets            - List configured presets
//	t2048 scores [preset]    - Show high scores
//	t2048 replay --moves ... - Replay a move sequence headlessly
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default from config)
//	--config <path>     - Use a custom config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the sliding-tile puzzle 2048 for the terminal.

Slide the board with the arrow keys, WASD, HJKL or a mouse swipe.
Equal tiles merge, and a new 2 or 4 appears after every move.

Available commands:
  play     - Play a preset directly
  presets  - List configured presets
  scores   - View high scores
  replay   - Replay moves without a terminal UI
  serve    - Start SSH server for remote play

Examples:
  t2048
  t2048 play --preset endless
  t2048 replay --seed 42 --moves LLURD
  t2048 serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based, printed by replay)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}
