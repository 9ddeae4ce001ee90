package maze

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

const dt = 0.05

func testRuntime(t *testing.T, seed int64) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 80, 32
	cfg.Seed = seed
	return cfg
}

func hostiles(w *sim.World) []sim.Entity {
	var out []sim.Entity
	for _, e := range w.Entities() {
		if e.Kind == sim.KindHostile {
			out = append(out, e)
		}
	}
	return out
}

func TestRulesFromDefaults(t *testing.T) {
	rules, err := Rules(config.DefaultMazeConfig())
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	if got := len(rules.Placements); got != 3 {
		t.Errorf("len(Placements) = %d, expected 3", got)
	}
	if rules.PlayerStart != core.V(290, 470) {
		t.Errorf("PlayerStart = %v, expected (290, 470)", rules.PlayerStart)
	}
	if got := rules.Contact.Range; math.Abs(got-20.0/1.5) > 1e-9 {
		t.Errorf("Contact.Range = %v, expected %v", got, 20.0/1.5)
	}
	if rules.Bounds.W != 560 || rules.Bounds.H != 620 {
		t.Errorf("Bounds = %+v, expected 560x620", rules.Bounds)
	}
	if !rules.Archetypes["blaze"].ReturnsHome {
		t.Error("ghosts do not return home after being eaten")
	}
}

func TestRulesBadLayout(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Layout = "###\n#.#\n"
	if _, err := Rules(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Rules() error = %v, expected ErrInvalid", err)
	}
}

func TestPelletsScoreWhileMoving(t *testing.T) {
	rules, err := Rules(config.DefaultMazeConfig())
	if err != nil {
		t.Fatal(err)
	}
	w := sim.NewWorld(rules, 1)
	w.Tick(0, sim.Start())

	start := w.Session().PelletsLeft
	for range 20 {
		w.Tick(dt, sim.SetDirection(sim.DirLeft))
	}

	sess := w.Session()
	if sess.State != sim.StateRunning {
		t.Fatalf("State = %v, expected running", sess.State)
	}
	eaten := start - sess.PelletsLeft
	if eaten < 2 {
		t.Errorf("eaten = %d, expected the player to clear a few tiles", eaten)
	}
	if sess.Score != 10*eaten {
		t.Errorf("Score = %d, expected %d", sess.Score, 10*eaten)
	}
	p, _ := w.Player()
	if p.Pos.Y != 470 || p.Pos.X >= 290 {
		t.Errorf("player at %v, expected left of the start on row 23", p.Pos)
	}
}

func TestGhostsWaitForPlayer(t *testing.T) {
	rules, err := Rules(config.DefaultMazeConfig())
	if err != nil {
		t.Fatal(err)
	}
	w := sim.NewWorld(rules, 1)
	w.Tick(0, sim.Start())
	before := hostiles(w)
	for range 20 {
		w.Tick(dt)
	}
	after := hostiles(w)
	for i := range before {
		if before[i].Pos != after[i].Pos {
			t.Errorf("%s moved from %v to %v before the player did", before[i].Archetype, before[i].Pos, after[i].Pos)
		}
	}

	for range 10 {
		w.Tick(dt, sim.SetDirection(sim.DirRight))
	}
	moved := false
	for i, e := range hostiles(w) {
		if e.Pos != before[i].Pos {
			moved = true
		}
	}
	if !moved {
		t.Error("ghosts stayed put after the player moved")
	}
}

func TestGameDeterminism(t *testing.T) {
	runtime := testRuntime(t, 7)
	keys := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}

	run := func() (uint64, core.GameState) {
		g := New()
		g.Reset(runtime)
		for i := range 900 {
			in := core.NewInputFrame()
			if i == 0 {
				in.Set(core.ActionConfirm)
			}
			in.Set(keys[(i/45)%len(keys)])
			g.Step(in)
		}
		return g.Hash(), g.State()
	}

	h1, s1 := run()
	h2, s2 := run()
	if h1 != h2 {
		t.Errorf("Hash() differs between identical runs: %x != %x", h1, h2)
	}
	if s1 != s2 {
		t.Errorf("State() differs between identical runs: %+v != %+v", s1, s2)
	}
	if s1.Score == 0 {
		t.Error("Score = 0, expected pellets to be eaten")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t, 1))
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 32)
	g.Render(dst)
	if got := dst.Get(12, 1); got != '█' {
		t.Errorf("Get(12, 1) = %q, expected the top-left wall", got)
	}
	if got := dst.Get(11, 1); got == '█' {
		t.Error("wall drawn left of the maze")
	}
	if !strings.Contains(dst.Row(0), "Pellets:") {
		t.Errorf("HUD = %q, expected the pellet count", dst.Row(0))
	}

	small := core.DefaultConfig()
	g.Reset(small)
	dst = core.NewScreen(small.ScreenW, small.ScreenH)
	g.Render(dst)
	if !strings.Contains(dst.String(), "too small") {
		t.Error("short terminal did not get the size warning")
	}
}

func TestFrightenedGhostSkin(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t, 1))
	e := sim.Entity{Kind: sim.KindHostile, Archetype: "blaze"}
	if s, _ := g.skin(e); s.Rune != 'M' {
		t.Errorf("skin rune = %q, expected 'M'", s.Rune)
	}
	e.Vulnerable = true
	if s, _ := g.skin(e); s.Rune != 'm' {
		t.Errorf("frightened skin rune = %q, expected 'm'", s.Rune)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("maze") {
		t.Error("maze is not registered")
	}
}
