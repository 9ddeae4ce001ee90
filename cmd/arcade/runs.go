package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show recently finished runs",
	Long: `List the most recent finished runs, newest first, for one game or for
all games. Runs with a replay can be verified with 'arcade replay'.

Examples:
  arcade runs
  arcade runs shooter --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		requireGame(gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening scores database: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		exitErr("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-36s  %-8s  %-8s  %-5s  %-7s  %-16s  %s\n", "Run", "Game", "Score", "Level", "Ticks", "Date", "Replay")
	fmt.Printf("  %-36s  %-8s  %-8s  %-5s  %-7s  %-16s  %s\n", "---", "----", "-----", "-----", "-----", "----", "------")
	for _, r := range runs {
		path := r.ReplayPath
		if path == "" {
			path = "-"
		}
		fmt.Printf("  %-36s  %-8s  %-8d  %-5d  %-7d  %-16s  %s\n",
			r.RunID, r.GameID, r.Score, r.Level, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"), path)
	}
}
