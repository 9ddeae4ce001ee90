package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game, or a summary of
every game that has been played.

Examples:
  arcade scores
  arcade scores slicer
  arcade scores maze --limit 20
  arcade scores shooter --all
  arcade scores slicer --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the game")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		runScoresSummary()
		return
	}
	gameID := args[0]
	requireGame(gameID)

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagScoresClear {
		err := store.ClearScores(gameID)
		store.Close()
		if err != nil {
			exitErr("clearing scores: %v", err)
		}
		log.Info("cleared scores", "game", gameID)
		fmt.Printf("Cleared all scores and runs for %s.\n", title)
		return
	}

	// Get top scores
	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil && stats != nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

// runScoresSummary prints per-game statistics for every registered game.
func runScoresSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening scores database: %v", err)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		exitErr("retrieving stats: %v", err)
	}

	fmt.Printf("  %-14s  %-8s  %-6s  %-8s  %s\n", "Game", "Best", "Games", "Average", "Last played")
	fmt.Printf("  %-14s  %-8s  %-6s  %-8s  %s\n", "----", "----", "-----", "-------", "-----------")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-14s  %-8s  %-6d  %-8s  %s\n", g.Title, "-", 0, "-", "never")
			continue
		}
		fmt.Printf("  %-14s  %-8d  %-6d  %-8.0f  %s\n",
			g.Title, st.HighScore, st.GamesCount, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
