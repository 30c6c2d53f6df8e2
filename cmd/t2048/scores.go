package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores",
	Long: `Display the top high scores for a preset, or for every preset when none
is given, followed by totals and the all-time best score.

Examples:
  t2048 scores
  t2048 scores classic
  t2048 scores endless --limit 25
  t2048 scores endless --clear`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded games (the best score is kept)")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	preset, title := "", "All presets"
	if len(args) == 1 {
		p, presetErr := cfg.Preset(args[0])
		if presetErr != nil {
			return fmt.Errorf("%w (run 't2048 presets' to list them)", presetErr)
		}
		preset, title = p.Name, p.Title
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(preset); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s.\n", title)
		return nil
	}

	return printScores(cmd.OutOrStdout(), store, preset, title, flagScoresLimit)
}

// printScores writes the score table and totals for preset ("" for all).
func printScores(w io.Writer, store *storage.Store, preset, title string, limit int) error {
	scores, err := store.TopScores(preset, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 't2048 play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-10s  %-3s  %s\n", "Rank", "Score", "Max", "Moves", "Preset", "Won", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-10s  %-3s  %s\n", "----", "-----", "---", "-----", "------", "---", "----")
	for i, s := range scores {
		won := ""
		if s.Won {
			won = "yes"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-6d  %-5d  %-10s  %-3s  %s\n",
			i+1, s.Score, s.MaxTile, s.Moves, s.Preset, won, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats(preset)
	if err != nil {
		return err
	}
	best, err := store.LoadBest()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games: %d  Wins: %d  Avg: %.0f  Max tile: %d\n", stats.GamesCount, stats.Wins, stats.AvgScore, stats.MaxTile)
	fmt.Fprintf(w, "All-time best: %d\n", best)
	return nil
}
