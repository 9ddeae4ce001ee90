package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/replay"
)

var (
	flagSimTicks  int
	flagSimRecord string
	flagSimWidth  int
	flagSimHeight int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a seeded bot through a game without a terminal UI",
	Long: `Run a game headlessly with a random-input bot. The bot is seeded from
--seed, so the same seed always produces the same run and final hash.

Every simulation event is logged at debug level, a summary at info.

Examples:
  arcade simulate slicer --seed 42
  arcade simulate maze --ticks 7200 --log-level debug
  arcade simulate shooter --seed 7 --record ./bot.replay`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simulateCmd.Flags().StringVar(&flagSimRecord, "record", "", "Save the run as a replay file")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 32, "Virtual screen height")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		exitErr("%v", err)
	}

	cfg := runtimeConfig(flagSimWidth, flagSimHeight)
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = string(preset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, rec, err := simulate(ctx, gameID, cfg, flagSimTicks)
	if err != nil {
		exitErr("%v", err)
	}

	if flagSimRecord != "" {
		if err := replay.Save(flagSimRecord, rec); err != nil {
			exitErr("%v", err)
		}
		log.Info("replay saved", "path", flagSimRecord, "frames", len(rec.Frames))
	}

	fmt.Printf("Game:   %s\n", res.Game)
	fmt.Printf("Seed:   %d\n", cfg.Seed)
	fmt.Printf("Ticks:  %d\n", res.Ticks)
	fmt.Printf("Score:  %d\n", res.State.Score)
	fmt.Printf("Level:  %d\n", res.State.Level)
	fmt.Printf("Health: %d\n", res.State.Health)
	fmt.Printf("Ended:  %v\n", res.State.GameOver)
	fmt.Printf("Hash:   %016x\n", res.Hash)
}

// simulate plays a game with a bot until it ends or maxTicks pass.
func simulate(ctx context.Context, gameID string, cfg core.RuntimeConfig, maxTicks int) (replay.Result, *replay.Recording, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return replay.Result{}, nil, err
	}
	game.Reset(cfg)

	recorder := replay.NewRecorder(gameID, cfg)
	b := newBot(cfg)
	logger := log.With("game", gameID, "seed", cfg.Seed)
	events := map[string]int{}

	res := replay.Result{Game: gameID}
	for tick := 0; tick < maxTicks; tick++ {
		if tick%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, nil, err
			}
		}

		in := b.next(tick)
		recorder.Record(in)
		res.State = game.Step(in).State
		res.Ticks++

		if src, ok := game.(registry.EventSource); ok {
			for _, ev := range src.Events() {
				events[ev.Type.String()]++
				logger.Debug("event", "tick", res.State.Ticks, "event", ev.Type,
					"archetype", ev.Archetype, "cause", ev.Cause, "amount", ev.Amount)
			}
		}
		if res.State.GameOver {
			break
		}
	}

	if h, ok := game.(registry.Hasher); ok {
		res.Hash = h.Hash()
	}
	logger.Info("simulation finished", "ticks", res.Ticks, "score", res.State.Score,
		"level", res.State.Level, "ended", res.State.GameOver, "events", events)

	return res, recorder.Finish(res.State.Score, res.Hash), nil
}

// bot produces pseudo-random input: held directions, a wandering
// pointer and bursts of fire.
type bot struct {
	rng     *core.SimpleRNG
	w, h    int
	dir     core.Action
	dirLeft int
	px, py  int
}

func newBot(cfg core.RuntimeConfig) *bot {
	return &bot{
		rng: core.NewSimpleRNG(cfg.Seed),
		w:   max(cfg.ScreenW, 1),
		h:   max(cfg.ScreenH, 1),
		px:  cfg.ScreenW / 2,
		py:  cfg.ScreenH / 2,
	}
}

var botDirections = []core.Action{
	core.ActionNone, core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
}

func (b *bot) next(tick int) core.InputFrame {
	in := core.NewInputFrame()
	if tick == 0 {
		in.Set(core.ActionConfirm)
	}

	if b.dirLeft <= 0 {
		b.dir = botDirections[b.rng.Intn(len(botDirections))]
		b.dirLeft = 10 + b.rng.Intn(30)
	}
	b.dirLeft--
	if b.dir != core.ActionNone {
		in.Set(b.dir)
	}

	if tick%20 == 0 {
		b.px = b.rng.Intn(b.w)
		b.py = 1 + b.rng.Intn(max(b.h-1, 1))
	}
	in.SetPointer(b.px, b.py)

	switch n := b.rng.Intn(600); {
	case n < 150:
		in.Set(core.ActionFire)
	case n < 155:
		in.Set(core.ActionSpecial)
	case n < 157:
		in.Set(core.ActionSecondary)
	}
	return in
}
