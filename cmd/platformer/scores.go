package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the results board of a level",
	Long: `Display the 10 best wins of the specified level, most tools first
and fastest first among equals.

Examples:
  platformer scores christmas
  platformer scores christmas --recent
  platformer scores sprint --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs of any outcome instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the level")
}

func runScores(_ *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			return
		}
		fmt.Printf("Cleared results for %s.\n", title)
		return
	}

	if flagRecent {
		printRecent(store, levelID, title)
		return
	}

	results, err := store.TopResults(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' and reach the tree to set the first result!\n", levelID)
	} else {
		fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "Rank", "Tools", "Time", "Date")
		fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "----", "-----", "----", "----")
		for i, r := range results {
			fmt.Printf("  %-4d  %-7s  %-6s  %s\n", i+1,
				fmt.Sprintf("%d/%d", r.Collected, r.Total),
				fmt.Sprintf("%ds", r.ElapsedSecs),
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.LevelStats(levelID); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Pits: %d  Timeouts: %d  Most tools: %d\n",
			stats.Runs, stats.Wins, stats.Falls, stats.Timeouts, stats.MostCollected)
	}
}

func printRecent(store *storage.Store, levelID, title string) {
	results, err := store.RecentResults(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-9s  %-12s  %-7s  %s\n", "Date", "Outcome", "Reason", "Tools", "Time")
	for _, r := range results {
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("  %-16s  %-9s  %-12s  %-7s  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Outcome, reason,
			fmt.Sprintf("%d/%d", r.Collected, r.Total), r.ElapsedSecs)
	}
}
