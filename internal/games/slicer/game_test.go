package slicer

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

const dt = 0.25

func testRuntime(t *testing.T, seed int64) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// hoveringConfig spawns motionless apples at (400, 100) every half second.
func hoveringConfig() config.SlicerConfig {
	cfg := config.DefaultSlicerConfig()
	cfg.Fruit.VelX = config.Range{}
	cfg.Fruit.VelY = config.Range{}
	cfg.Fruit.Spin = config.Range{}
	cfg.Fruit.Gravity = 0
	cfg.Fruit.SpawnHeight = -100
	cfg.Fruit.EdgeInset = cfg.World.Width / 2
	cfg.Spawner = config.SpawnerConfig{Interval: 0.5, MinInterval: 0.5}
	cfg.Varieties = []config.FruitVariety{{Name: "apple", Points: 10, Weight: 1}}
	return cfg
}

func scored(events []sim.Event) int {
	total := 0
	for _, e := range events {
		if e.Type == sim.EventScored {
			total += e.Amount
		}
	}
	return total
}

func TestRulesFromDefaults(t *testing.T) {
	rules := Rules(config.DefaultSlicerConfig())
	if got := len(rules.Archetypes); got != 18 {
		t.Errorf("len(Archetypes) = %d, expected 18", got)
	}
	if got := len(rules.Spawners[0].Table); got != 8 {
		t.Errorf("len(Table) = %d, expected 8", got)
	}
	if a := rules.Archetypes["tomato"]; a.Reward != 25 || a.Burst != "juice:tomato" {
		t.Errorf("tomato = %+v, expected reward 25 and a juice burst", a)
	}
	if rules.PlayerStart != core.V(400, 300) {
		t.Errorf("PlayerStart = %v, expected (400, 300)", rules.PlayerStart)
	}
}

func TestSliceComboAndMiss(t *testing.T) {
	w := sim.NewWorld(Rules(hoveringConfig()), 1)
	w.Tick(0, sim.Start())
	w.Tick(dt)
	if got := sim.Count(w.Tick(dt), sim.EventSpawned); got != 1 {
		t.Fatalf("spawned = %d, expected 1 apple", got)
	}

	slice := []sim.Command{sim.AimAt(core.V(400, 100)), sim.Fire()}
	events := w.Tick(dt, slice...)
	if got := scored(events); got != 10 {
		t.Errorf("first slice scored %d, expected 10", got)
	}
	if got := sim.Count(events, sim.EventSpawned); got != 4 {
		t.Errorf("spawned = %d, expected the strike and 3 juice drops", got)
	}

	w.Tick(dt)
	if got := scored(w.Tick(dt, slice...)); got != 11 {
		t.Errorf("second slice scored %d, expected 11 with the combo", got)
	}
	if got := w.Session().Combo; got != 2 {
		t.Errorf("Combo = %d, expected 2", got)
	}

	// A fresh apple appears at (400, 100) this tick; slice away from it.
	events = w.Tick(dt, sim.AimAt(core.V(100, 500)), sim.Fire())
	if got := sim.Count(events, sim.EventComboReset); got != 1 {
		t.Errorf("combo resets = %d, expected 1 for a missed slice", got)
	}
	if got := w.Session().Score; got != 21 {
		t.Errorf("Score = %d, expected 21", got)
	}
}

func TestEscapedFruitCostsLife(t *testing.T) {
	w := sim.NewWorld(Rules(config.DefaultSlicerConfig()), 1)
	w.Tick(0, sim.Start())

	lost := 0
	for range 240 {
		lost += sim.Count(w.Tick(1.0/60), sim.EventLifeLost)
	}
	if lost == 0 {
		t.Fatal("no fruit escaped within 4 seconds")
	}
	if got := w.Session().Health; got != 3-lost {
		t.Errorf("Health = %d, expected %d", got, 3-lost)
	}
}

func TestGameDeterminism(t *testing.T) {
	runtime := testRuntime(t, 99)

	run := func() (uint64, core.GameState) {
		g := New()
		g.Reset(runtime)
		for i := range 600 {
			in := core.NewInputFrame()
			if i == 0 {
				in.Set(core.ActionConfirm)
			}
			in.SetPointer(10+i%60, 5+i%15)
			if i%7 == 0 {
				in.Set(core.ActionFire)
			}
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
	if s1.Ticks == 0 {
		t.Error("Ticks = 0, expected the session to have started")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t, 1))
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD = %q, expected the score", dst.Row(0))
	}
	if !strings.Contains(dst.String(), "FRUIT SLICER") {
		t.Error("idle screen does not show the title")
	}

	small := core.DefaultConfig()
	small.ScreenW, small.ScreenH = 20, 8
	g.Reset(small)
	dst = core.NewScreen(20, 8)
	g.Render(dst)
	if !strings.Contains(dst.String(), "too small") {
		t.Error("tiny terminal did not get the size warning")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("slicer") {
		t.Error("slicer is not registered")
	}
}
