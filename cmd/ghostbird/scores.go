package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostbird/internal/platform/tui"
	"github.com/vovakirdan/ghostbird/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the top 10 runs on the current map.

With --interactive, opens a scrollable board that can also list the most
recent runs on any map.

Examples:
  ghostbird scores
  ghostbird scores --map ./maps/hard.csv
  ghostbird scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive board")
}

func runScores(cmd *cobra.Command, _ []string) {
	a := setup(cmd, os.Stderr)

	store, err := storage.Open(a.paths.DB)
	if err != nil {
		fatal(a.logger, "error opening run history", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, a.mapName, width, height); err != nil {
			a.logger.Error("error running scoreboard", "error", err)
		}
		return
	}

	runs, err := store.TopRuns(a.mapName, 10)
	if err != nil {
		a.logger.Error("error retrieving runs", "error", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", a.mapName)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ghostbird play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-7s  %-10s  %s\n", "Rank", "Score", "Lives", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-7s  %-10s  %s\n", "----", "-----", "-----", "------", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-5d  %-5d  %-8s  %-7s  %-10s  %s\n",
			i+1, r.Score, r.Lives, r.Reason,
			fmt.Sprintf("%.1fs", r.Duration().Seconds()),
			r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(a.mapName); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Cleared: %d  Average: %.1f\n",
			stats.BestScore, stats.Runs, stats.Cleared, stats.AvgScore)
	}
}
