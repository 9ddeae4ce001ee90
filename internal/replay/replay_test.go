package replay

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"

	_ "github.com/vovakirdan/arcade-sim/internal/games/shooter"
	_ "github.com/vovakirdan/arcade-sim/internal/games/slicer"
)

// tally folds every input into its hash.
type tally struct {
	hash  uint64
	ticks int
}

func (g *tally) ID() string    { return "tally" }
func (g *tally) Title() string { return "Tally" }
func (g *tally) Reset(cfg core.RuntimeConfig) {
	g.hash = uint64(cfg.Seed) //#nosec G115 -- test seeds are small
	g.ticks = 0
}
func (g *tally) Render(*core.Screen) {}
func (g *tally) State() core.GameState {
	return core.GameState{Ticks: g.ticks, Started: true}
}
func (g *tally) Hash() uint64 { return g.hash }
func (g *tally) Step(in core.InputFrame) core.StepResult {
	g.hash = g.hash*1099511628211 + uint64(in.Bits())
	if in.Pointer.Valid {
		g.hash ^= uint64(in.Pointer.X<<16 | in.Pointer.Y) //#nosec G115 -- test coordinates are small
	}
	g.ticks++
	return core.StepResult{State: g.State()}
}

func init() {
	registry.Register("tally", func() registry.Game { return &tally{} })
}

func record(game string, runtime core.RuntimeConfig, inputs []core.InputFrame) *Recording {
	g, _ := registry.Create(game)
	g.Reset(runtime)
	r := NewRecorder(game, runtime)
	for _, in := range inputs {
		g.Step(in)
		r.Record(in)
	}
	return r.Finish(g.State().Score, g.(registry.Hasher).Hash())
}

func frames(n int) []core.InputFrame {
	out := make([]core.InputFrame, n)
	for i := range out {
		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Set(core.ActionConfirm)
		case i%11 == 0:
			in.Set(core.ActionFire)
		case i%13 == 0:
			in.Set(core.ActionSpecial)
		}
		if i > 100 {
			in.SetPointer(20+i/50, 10)
		}
		out[i] = in
	}
	return out
}

func TestRecorderRunLength(t *testing.T) {
	r := NewRecorder("tally", core.DefaultConfig())
	idle := core.NewInputFrame()
	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)

	for _, in := range []core.InputFrame{idle, idle, idle, fire, idle, idle} {
		r.Record(in)
	}
	rec := r.Finish(0, 1)

	if rec.Ticks != 6 {
		t.Errorf("Ticks = %d, expected 6", rec.Ticks)
	}
	counts := make([]int, len(rec.Frames))
	for i, f := range rec.Frames {
		counts[i] = f.Count
	}
	if len(counts) != 3 || counts[0] != 3 || counts[1] != 1 || counts[2] != 2 {
		t.Errorf("frame counts = %v, expected [3 1 2]", counts)
	}
}

func TestRunVerifiesHash(t *testing.T) {
	runtime := core.DefaultConfig()
	runtime.Seed = 17
	rec := record("tally", runtime, frames(500))

	res, err := Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Ticks != 500 || res.Hash != rec.Hash {
		t.Errorf("Run() = %+v, expected 500 ticks and hash %x", res, rec.Hash)
	}

	rec.Frames[len(rec.Frames)/2].Bits ^= 1 << uint(core.ActionFire)
	if _, err := Run(context.Background(), rec); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Run() error = %v, expected ErrHashMismatch", err)
	}
}

func TestRunUnknownGame(t *testing.T) {
	rec := &Recording{Version: FormatVersion, Game: "no-such-game"}
	if _, err := Run(context.Background(), rec); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Run() error = %v, expected ErrUnknownGame", err)
	}
}

func TestRunCancelled(t *testing.T) {
	rec := record("tally", core.DefaultConfig(), frames(10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, rec); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}

func TestSaveLoadAndReplayGames(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	for _, game := range []string{"slicer", "shooter"} {
		t.Run(game, func(t *testing.T) {
			runtime := core.DefaultConfig()
			runtime.Seed = 2024
			rec := record(game, runtime, frames(1200))
			if rec.Hash == 0 {
				t.Fatal("recorded hash is zero")
			}

			path := filepath.Join(dir, game, "run.replay")
			if err := Save(path, rec); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loaded.Game != game || loaded.Seed != 2024 || loaded.Ticks != 1200 {
				t.Errorf("Load() = %s seed %d ticks %d, expected %s seed 2024 ticks 1200",
					loaded.Game, loaded.Seed, loaded.Ticks, game)
			}

			res, err := Run(context.Background(), loaded)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.State.Score != rec.Score {
				t.Errorf("Score = %d, expected %d", res.State.Score, rec.Score)
			}
		})
	}
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Recording{Version: FormatVersion + 1, Game: "tally"}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrVersion) {
		t.Errorf("Decode() error = %v, expected ErrVersion", err)
	}
}
