package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/platform/tui"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

var flagRecordDir string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, then pick a
difficulty. Leaving a game returns here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --record-dir ~/.arcade/replays`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagRecordDir, "record-dir", "", "Save a replay of every finished run in this directory")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig(terminalSize())

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		choice, err := tui.RunDifficultySelector(game.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if choice.Quit {
			break
		}
		if choice.Back {
			continue
		}

		gameCfg := cfg
		gameCfg.Difficulty = string(choice.Preset)
		if gameCfg.Seed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}
		log.Info("starting game", "game", gameID, "seed", gameCfg.Seed, "difficulty", choice.Preset)

		if err := tui.Run(game, tui.GameOptions{
			Store:     store,
			Runtime:   gameCfg,
			RecordDir: flagRecordDir,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
