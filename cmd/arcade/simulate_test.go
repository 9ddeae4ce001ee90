package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/replay"
)

func TestSimulateIsDeterministic(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 42}

	for _, game := range []string{"slicer", "maze", "shooter"} {
		t.Run(game, func(t *testing.T) {
			a, _, err := simulate(context.Background(), game, cfg, 1500)
			if err != nil {
				t.Fatalf("simulate() failed: %v", err)
			}
			b, _, err := simulate(context.Background(), game, cfg, 1500)
			if err != nil {
				t.Fatalf("simulate() failed: %v", err)
			}
			if a.Hash != b.Hash || a.State != b.State {
				t.Errorf("simulate() differs between runs: %+v != %+v", a, b)
			}
			if !a.State.Started {
				t.Error("bot never started the game")
			}
		})
	}
}

func TestSimulateRecordingReplays(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 3}

	res, rec, err := simulate(context.Background(), "shooter", cfg, 900)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bot.replay")
	if err := replay.Save(path, rec); err != nil {
		t.Fatalf("replay.Save() failed: %v", err)
	}
	loaded, err := replay.Load(path)
	if err != nil {
		t.Fatalf("replay.Load() failed: %v", err)
	}

	got, err := replay.Run(context.Background(), loaded)
	if err != nil {
		t.Fatalf("replay.Run() failed: %v", err)
	}
	if got.Ticks != res.Ticks || got.Hash != res.Hash {
		t.Errorf("replay.Run() = %d ticks %x, expected %d ticks %x", got.Ticks, got.Hash, res.Ticks, res.Hash)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1}
	if _, _, err := simulate(ctx, "slicer", cfg, 100); err == nil {
		t.Error("simulate() with a cancelled context returned nil error")
	}
}

func TestSSHPort(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":2222", "2222"},
		{"0.0.0.0:23234", "23234"},
		{"bogus", "23234"},
	}
	for _, tt := range tests {
		if got := sshPort(tt.addr); got != tt.expected {
			t.Errorf("sshPort(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}
