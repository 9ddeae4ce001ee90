package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/platform/tui"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  WASD/Arrows  - Move / steer
  Mouse        - Aim (slicer blade, shooter crosshair)
  Space/Click  - Fire / slice
  B            - Bomb (shooter)
  M            - Missile (shooter)
  Enter        - Start
  P            - Pause
  R            - Restart
  Esc/B        - Back (when paused or after game over)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play slicer
  arcade play maze --difficulty easy
  arcade play shooter --difficulty hard --seed 7
  arcade play shooter --record ./last.replay
  arcade play slicer --config ./my-slicer.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Save a replay of each finished run to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		exitErr("%v", err)
	}

	cfg := runtimeConfig(terminalSize())
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = string(preset)

	game, err := registry.Create(gameID)
	if err != nil {
		exitErr("creating game: %v", err)
	}

	store := openStore()
	log.Info("starting game", "game", gameID, "seed", cfg.Seed, "difficulty", preset)

	runErr := tui.Run(game, tui.GameOptions{
		Store:      store,
		Runtime:    cfg,
		RecordPath: flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr("running game: %v", runErr)
	}
}
