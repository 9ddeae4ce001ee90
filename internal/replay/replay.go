// Package replay records the input of a game session and re-runs it.
// Games built on the simulation core are deterministic for a given seed,
// runtime config and input sequence, so a recording plus the final world
// hash is enough to verify a run.
package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// FormatVersion is bumped whenever the encoding changes incompatibly.
const FormatVersion = 1

var (
	// ErrHashMismatch is returned when a re-run ends in a different state.
	ErrHashMismatch = errors.New("replay: hash mismatch")
	// ErrUnknownGame is returned when the recorded game is not registered.
	ErrUnknownGame = errors.New("replay: unknown game")
	// ErrVersion is returned for recordings of another format version.
	ErrVersion = errors.New("replay: unsupported format version")
)

// Frame is a run of identical input frames.
type Frame struct {
	Bits  uint32 `msgpack:"b"`
	X     int    `msgpack:"x,omitempty"`
	Y     int    `msgpack:"y,omitempty"`
	Valid bool   `msgpack:"v,omitempty"`
	Count int    `msgpack:"n"`
}

func (f Frame) input() core.InputFrame {
	return core.FrameFromBits(f.Bits, core.Pointer{X: f.X, Y: f.Y, Valid: f.Valid})
}

// Recording is a complete session: everything needed to rebuild the game
// and the input it received on every tick.
type Recording struct {
	Version    int     `msgpack:"version"`
	Game       string  `msgpack:"game"`
	Seed       int64   `msgpack:"seed"`
	TickRate   int     `msgpack:"tick_rate"`
	ScreenW    int     `msgpack:"screen_w"`
	ScreenH    int     `msgpack:"screen_h"`
	ConfigPath string  `msgpack:"config_path,omitempty"`
	Difficulty string  `msgpack:"difficulty,omitempty"`
	Frames     []Frame `msgpack:"frames"`
	Ticks      int     `msgpack:"ticks"`
	Score      int     `msgpack:"score"`
	Hash       uint64  `msgpack:"hash"`
}

// Runtime returns the runtime config the game was reset with.
func (r *Recording) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    r.ScreenW,
		ScreenH:    r.ScreenH,
		TickRate:   r.TickRate,
		Seed:       r.Seed,
		ConfigPath: r.ConfigPath,
		Difficulty: r.Difficulty,
	}
}

// Recorder collects the input of one session.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game reset with runtime.
func NewRecorder(game string, runtime core.RuntimeConfig) *Recorder {
	return &Recorder{rec: Recording{
		Version:    FormatVersion,
		Game:       game,
		Seed:       runtime.Seed,
		TickRate:   runtime.TickRate,
		ScreenW:    runtime.ScreenW,
		ScreenH:    runtime.ScreenH,
		ConfigPath: runtime.ConfigPath,
		Difficulty: runtime.Difficulty,
	}}
}

// Record appends the input of one Step.
func (r *Recorder) Record(in core.InputFrame) {
	f := Frame{Bits: in.Bits(), X: in.Pointer.X, Y: in.Pointer.Y, Valid: in.Pointer.Valid, Count: 1}
	if n := len(r.rec.Frames); n > 0 {
		last := &r.rec.Frames[n-1]
		if last.Bits == f.Bits && last.X == f.X && last.Y == f.Y && last.Valid == f.Valid {
			last.Count++
			r.rec.Ticks++
			return
		}
	}
	r.rec.Frames = append(r.rec.Frames, f)
	r.rec.Ticks++
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() int {
	return r.rec.Ticks
}

// Finish seals the recording with the final score and hash. The recorder
// may keep recording afterwards; each Finish returns a snapshot.
func (r *Recorder) Finish(score int, hash uint64) *Recording {
	rec := r.rec
	rec.Frames = append([]Frame(nil), r.rec.Frames...)
	rec.Score = score
	rec.Hash = hash
	return &rec
}

// Encode writes a recording to w.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return nil
}

// Decode reads a recording from r.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

// Save writes a recording to path, creating parent directories.
func Save(path string, rec *Recording) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Result is the outcome of a re-run.
type Result struct {
	Game  string
	Ticks int
	State core.GameState
	Hash  uint64
}

// Run re-executes a recording headlessly. It fails with ErrHashMismatch
// when the recording carries a hash and the re-run ends elsewhere.
func Run(ctx context.Context, rec *Recording) (Result, error) {
	g, err := registry.Create(rec.Game)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownGame, rec.Game)
	}
	g.Reset(rec.Runtime())

	res := Result{Game: rec.Game}
	for _, f := range rec.Frames {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		in := f.input()
		for range f.Count {
			g.Step(in)
			res.Ticks++
		}
	}
	res.State = g.State()

	if h, ok := g.(registry.Hasher); ok {
		res.Hash = h.Hash()
	}
	if rec.Hash != 0 && res.Hash != rec.Hash {
		return res, fmt.Errorf("%w: recorded %016x, got %016x", ErrHashMismatch, rec.Hash, res.Hash)
	}
	return res, nil
}
