package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var (
	flagReplayMoves   string
	flagReplayBoard   string
	flagReplayScore   int
	flagReplayPreset  string
	flagReplayVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a move sequence without the terminal UI",
	Long: `Play a sequence of moves headlessly and print the resulting board.

The same --seed and --moves always produce the same game, which makes
replay useful for checking bug reports and for scripting. Without --seed
a time-based seed is used; it is printed so the run can be repeated.

Moves are letters u, d, l, r (case-insensitive); commas and spaces are
ignored. --board starts from a given position instead of a fresh board,
written as rows separated by "/" with "." for empty cells.

Examples:
  t2048 replay --seed 42 --moves LLURDD
  t2048 replay --moves "l,l,u" --board "2,2,.,./.,.,.,./.,.,.,./.,.,.,4"
  t2048 replay --seed 7 --moves UUDD --verbose`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayMoves, "moves", "", "Moves to play, e.g. LLUR")
	replayCmd.Flags().StringVar(&flagReplayBoard, "board", "", "Starting board (default: a fresh board from the seed)")
	replayCmd.Flags().IntVar(&flagReplayScore, "score", 0, "Starting score when --board is given")
	replayCmd.Flags().StringVar(&flagReplayPreset, "preset", "", "Preset whose rules to use (default: classic)")
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Print the board after every move")
	//nolint:errcheck // Flag exists
	replayCmd.MarkFlagRequired("moves")
}

// replayOptions describes one headless run.
type replayOptions struct {
	Rules   engine.Rules
	Preset  string
	Seed    int64
	Moves   []engine.Direction
	Board   *engine.Grid
	Score   int
	Verbose bool
}

func runReplay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	preset, err := cfg.Preset(flagReplayPreset)
	if err != nil {
		return err
	}

	moves, err := engine.ParseMoves(flagReplayMoves)
	if err != nil {
		return err
	}

	opts := replayOptions{
		Rules:   preset.Rules(),
		Preset:  preset.Name,
		Seed:    resolveSeed(flagSeed),
		Moves:   moves,
		Score:   flagReplayScore,
		Verbose: flagReplayVerbose,
	}
	if flagReplayBoard != "" {
		board, boardErr := engine.ParseGrid(flagReplayBoard)
		if boardErr != nil {
			return boardErr
		}
		opts.Board = &board
	}

	_, err = replay(cmd.Context(), cmd.OutOrStdout(), opts)
	return err
}

// replay plays opts.Moves and writes a report to w. Moves after the game
// ends are skipped.
func replay(ctx context.Context, w io.Writer, opts replayOptions) (session.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	eng := engine.New(opts.Rules, rand.New(rand.NewSource(opts.Seed)))
	sess := session.New(eng, session.WithPreset(opts.Preset))
	if opts.Board != nil {
		if err := sess.Resume(*opts.Board, opts.Score); err != nil {
			return session.Snapshot{}, err
		}
	}

	if opts.Verbose {
		fmt.Fprintf(w, "start\n%s\n\n", sess.Grid())
	}

	played, rejected := 0, 0
	for i, dir := range opts.Moves {
		if sess.State() == session.StateTerminal {
			fmt.Fprintf(w, "game over after %d of %d moves\n\n", i, len(opts.Moves))
			break
		}

		res := sess.Move(ctx, dir)
		played++
		if !res.Accepted {
			rejected++
		}

		if opts.Verbose {
			fmt.Fprintf(w, "%d. %s (%s) score %d\n%s\n\n", i+1, dir, res.State, sess.Score(), sess.Grid())
		}
	}

	snap := sess.Snapshot()
	fmt.Fprintf(w, "%s\n\n", snap.Grid)
	fmt.Fprintf(w, "preset:   %s\n", presetLabel(opts.Preset))
	fmt.Fprintf(w, "seed:     %d\n", opts.Seed)
	fmt.Fprintf(w, "played:   %d (%d rejected)\n", played, rejected)
	fmt.Fprintf(w, "score:    %d\n", snap.Score)
	fmt.Fprintf(w, "max tile: %d\n", snap.Grid.MaxTile())
	fmt.Fprintf(w, "won:      %t\n", snap.Won)
	fmt.Fprintf(w, "over:     %t\n", snap.GameOver)
	return snap, nil
}

// resolveSeed replaces a zero seed with one based on the current time.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func presetLabel(name string) string {
	if name == "" {
		return config.ClassicPreset
	}
	return name
}
