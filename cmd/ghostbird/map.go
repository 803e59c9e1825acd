package main

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostbird/internal/games/flappy"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Validate and print an obstacle schedule",
	Long: `Load an obstacle schedule and list its pipes in spawn order. The #
column is the pipe's position in the file; pipes due at the same time keep file order.

A schedule is a CSV file: a header line, then one "gap_y,gap_height,time"
record per pipe. gap_y and gap_height are fractions of the field height,
time is in seconds after the run starts. Fields that do not parse are
reported; such pipes still spawn, immediately when their time is bad.

Examples:
  ghostbird map
  ghostbird map --map ./maps/hard.csv`,
	Args: cobra.NoArgs,
	Run:  runMap,
}

func runMap(cmd *cobra.Command, _ []string) {
	a := setup(cmd, os.Stderr)

	fmt.Printf("Map - %s (%d pipes)\n", a.mapName, len(a.pipes))
	fmt.Println()
	fmt.Printf("  %-3s  %-6s  %-10s  %-8s  %s\n", "#", "Gap Y", "Gap Height", "Spawn", "Notes")
	fmt.Printf("  %-3s  %-6s  %-10s  %-8s  %s\n", "-", "-----", "----------", "-----", "-----")

	malformed := 0
	for _, i := range spawnOrder(a.pipes) {
		p := a.pipes[i]
		note := ""
		if math.IsNaN(p.GapY) || math.IsNaN(p.GapHeight) || math.IsNaN(p.Time) {
			note = "malformed field"
			malformed++
		}
		fmt.Printf("  %-3d  %-6.2f  %-10.2f  %-8s  %s\n", i+1, p.GapY, p.GapHeight, p.Delay(), note)
	}

	fmt.Println()
	if malformed > 0 {
		fmt.Printf("%d pipe(s) with malformed fields\n", malformed)
		return
	}
	fmt.Println("OK")
}

// spawnOrder returns pipe indexes sorted by spawn offset, ties in file order.
func spawnOrder(pipes []flappy.Pipe) []int {
	order := make([]int, len(pipes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(pipes[a].Delay(), pipes[b].Delay())
	})
	return order
}
