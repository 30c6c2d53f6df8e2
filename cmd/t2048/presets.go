package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List configured presets",
	Long: `Shows every rule preset: the classic rules plus those from the config file.

Examples:
  t2048 presets
  t2048 presets --config ./my-presets.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	presets := cfg.AllPresets()
	out := cmd.OutOrStdout()

	// Calculate column widths
	maxNameLen := len("Name")
	for _, p := range presets {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Fprintf(out, "  %-*s  %-18s  %-12s  %s\n", maxNameLen, "Name", "Title", "Goal", "4s")
	fmt.Fprintf(out, "  %-*s  %-18s  %-12s  %s\n", maxNameLen, "----", "-----", "----", "--")
	for _, p := range presets {
		fmt.Fprintf(out, "  %-*s  %-18s  %-12s  %.0f%%\n", maxNameLen, p.Name, p.Title, p.Goal(), p.Spawn4Prob*100)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 't2048 play --preset <name>' to play one.")
	return nil
}
