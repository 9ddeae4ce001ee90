package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-sim/internal/replay"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file|run-id>",
	Short: "Re-run a recorded session and verify its final state",
	Long: `Load a replay written by 'arcade play --record', 'arcade menu --record-dir'
or 'arcade simulate --record', run it headlessly and compare the final
world hash with the recorded one. A run ID from 'arcade runs' resolves to
the replay file stored with that run.

Exits with status 1 when the re-run diverges.

Examples:
  arcade replay ./last.replay
  arcade replay ~/.arcade/replays/shooter_0b6f1c2e.replay
  arcade replay 0b6f1c2e-5d1a-4c4e-9a57-3f0c1e2d4b6a`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	path, err := replayPath(args[0])
	if err != nil {
		exitErr("%v", err)
	}
	rec, err := replay.Load(path)
	if err != nil {
		exitErr("%v", err)
	}
	log.Info("replaying", "game", rec.Game, "seed", rec.Seed, "ticks", rec.Ticks, "frames", len(rec.Frames))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := replay.Run(ctx, rec)

	fmt.Printf("Game:     %s\n", rec.Game)
	fmt.Printf("Seed:     %d\n", rec.Seed)
	fmt.Printf("Ticks:    %d\n", res.Ticks)
	fmt.Printf("Score:    %d (recorded %d)\n", res.State.Score, rec.Score)
	fmt.Printf("Hash:     %016x\n", res.Hash)

	switch {
	case errors.Is(err, replay.ErrHashMismatch):
		fmt.Printf("Verified: no (recorded %016x)\n", rec.Hash)
		os.Exit(1)
	case err != nil:
		exitErr("%v", err)
	case rec.Hash == 0:
		fmt.Println("Verified: no hash recorded")
	default:
		fmt.Println("Verified: yes")
	}
}

// replayPath resolves a run ID to its stored replay file. Anything that is not
// a UUID is taken as a path.
func replayPath(arg string) (string, error) {
	if _, err := uuid.Parse(arg); err != nil {
		return arg, nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	run, err := store.RunByID(arg)
	if err != nil {
		return "", err
	}
	switch {
	case run == nil:
		return "", fmt.Errorf("no run with id %s", arg)
	case run.ReplayPath == "":
		return "", fmt.Errorf("run %s was not recorded", arg)
	}
	return run.ReplayPath, nil
}
