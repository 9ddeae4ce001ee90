package shooter

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

const dt = 0.05

// up is an aim point straight above the ship's start.
var up = core.V(600, 0)

func testRuntime(t *testing.T, seed int64) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// rangeRules places motionless enemies and turns the spawner off.
func rangeRules(cfg config.ShooterConfig, placements ...sim.Placement) sim.Rules {
	for i := range cfg.Enemies {
		cfg.Enemies[i].Speed = 0
	}
	rules := Rules(cfg)
	rules.Spawners = nil
	rules.Placements = placements
	return rules
}

func enemy(name string, x, y float64) sim.Placement {
	return sim.Placement{Archetype: name, Pos: core.V(x, y)}
}

func alive(w *sim.World, archetype string) int {
	n := 0
	for _, e := range w.Entities() {
		if e.Archetype == archetype {
			n++
		}
	}
	return n
}

func run(w *sim.World, ticks int, cmds ...sim.Command) []sim.Event {
	events := w.Tick(dt, cmds...)
	for range ticks - 1 {
		events = append(events, w.Tick(dt)...)
	}
	return events
}

func TestRulesFromDefaults(t *testing.T) {
	rules := Rules(config.DefaultShooterConfig())
	if got := len(rules.Archetypes); got != 10 {
		t.Errorf("len(Archetypes) = %d, expected 10", got)
	}
	if rules.PlayerStart != core.V(600, 560) {
		t.Errorf("PlayerStart = %v, expected (600, 560)", rules.PlayerStart)
	}
	if !rules.Archetypes[BlastArchetype].Lethal || rules.Archetypes[SparkArchetype].Lethal {
		t.Error("only ordnance explosions should be lethal")
	}
	if got := rules.Archetypes[BoomArchetype].AreaRadius; got != 250 {
		t.Errorf("missile blast radius = %v, expected 250", got)
	}
	if got := len(rules.Weapons); got != 3 {
		t.Errorf("len(Weapons) = %d, expected 3", got)
	}
}

func TestBulletsWearDownEnemy(t *testing.T) {
	w := sim.NewWorld(rangeRules(config.DefaultShooterConfig(), enemy("brute", 600, 460)), 1)
	w.Tick(0, sim.Start(), sim.AimAt(up))

	events := run(w, 10, sim.Fire())
	if got := sim.Count(events, sim.EventDamaged); got != 1 {
		t.Errorf("damage events = %d, expected 1", got)
	}
	if got := alive(w, "brute"); got != 1 {
		t.Fatalf("brutes = %d, expected it to survive one bullet", got)
	}
	if got := alive(w, SparkArchetype); got != 1 {
		t.Errorf("sparks = %d, expected 1", got)
	}

	run(w, 10, sim.Fire())
	if got := alive(w, "brute"); got != 0 {
		t.Errorf("brutes = %d, expected 0 after two bullets", got)
	}
	if got := w.Session().Score; got != 100 {
		t.Errorf("Score = %d, expected 100", got)
	}
	if got := w.Resource(Ammo); got != 997 {
		t.Errorf("ammo = %d, expected 997", got)
	}
}

func TestMissileBlastClearsArea(t *testing.T) {
	w := sim.NewWorld(rangeRules(config.DefaultShooterConfig(),
		enemy("grunt", 600, 460), enemy("grunt", 700, 460), enemy("grunt", 100, 100)), 1)
	w.Tick(0, sim.Start(), sim.AimAt(up))

	run(w, 5, sim.Secondary())
	if got := alive(w, "grunt"); got != 1 {
		t.Errorf("grunts = %d, expected only the distant one left", got)
	}
	// 50×10 for the direct hit, 50 for the blast.
	if got := w.Session().Score; got != 550 {
		t.Errorf("Score = %d, expected 550", got)
	}
	if got := w.Resource(Missiles); got != 7 {
		t.Errorf("missiles = %d, expected 7", got)
	}
}

func TestBombGoesOffAfterFuse(t *testing.T) {
	const frame = 1.0 / 60
	cfg := config.DefaultShooterConfig()
	cfg.Bomb.VelX = config.Range{}
	w := sim.NewWorld(rangeRules(cfg, enemy("grunt", 600, 480)), 1)
	w.Tick(0, sim.Start())

	w.Tick(frame, sim.Special())
	for range 29 {
		w.Tick(frame)
	}
	if got := alive(w, "grunt"); got != 1 {
		t.Fatalf("grunts = %d, expected the bomb to fly through", got)
	}
	if got := w.Resource(Bombs); got != 8 {
		t.Errorf("bombs = %d, expected 8", got)
	}

	var events []sim.Event
	for range 40 {
		events = append(events, w.Tick(frame)...)
	}
	if got := sim.Count(events, sim.EventSpawned); got != 1 {
		t.Errorf("spawned = %d, expected the blast", got)
	}
	if got := alive(w, "grunt"); got != 0 {
		t.Errorf("grunts = %d, expected the blast to kill it", got)
	}
}

func TestContactCostsHealth(t *testing.T) {
	w := sim.NewWorld(rangeRules(config.DefaultShooterConfig(), enemy("grunt", 600, 545)), 1)
	w.Tick(0, sim.Start())
	w.Tick(dt)

	if got := w.Session().Health; got != 95 {
		t.Errorf("Health = %d, expected 95", got)
	}
	if got := alive(w, "grunt"); got != 0 {
		t.Errorf("grunts = %d, expected the rammer removed", got)
	}
	if got := alive(w, FlashArchetype); got != 1 {
		t.Errorf("flashes = %d, expected 1", got)
	}
	if got := w.Session().Score; got != 0 {
		t.Errorf("Score = %d, expected no reward for ramming", got)
	}
}

func TestWaveClearRestocks(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Wave.KillsPerLevel = 1
	w := sim.NewWorld(rangeRules(cfg, enemy("grunt", 600, 460)), 1)
	w.Tick(0, sim.Start(), sim.AimAt(up))

	events := run(w, 10, sim.Fire())
	if got := sim.Count(events, sim.EventLevelCleared); got != 1 {
		t.Fatalf("level clears = %d, expected 1", got)
	}
	if got := w.Session().Level; got != 2 {
		t.Errorf("Level = %d, expected 2", got)
	}
	if got := w.Resource(Ammo); got != 1098 {
		t.Errorf("ammo = %d, expected 1098", got)
	}
	if got := w.Resource(Bombs); got != 11 {
		t.Errorf("bombs = %d, expected 11", got)
	}
}

func TestEmptyMagazineIsSilent(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Missiles.Initial = 1
	w := sim.NewWorld(rangeRules(cfg), 1)
	w.Tick(0, sim.Start())

	w.Tick(dt, sim.Secondary())
	events := w.Tick(dt, sim.Secondary())
	if got := sim.Count(events, sim.EventSpawned); got != 0 {
		t.Errorf("spawned = %d, expected nothing from an empty magazine", got)
	}
	if got := w.Resource(Missiles); got != 0 {
		t.Errorf("missiles = %d, expected 0", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	runtime := testRuntime(t, 42)

	run := func() (uint64, core.GameState) {
		g := New()
		g.Reset(runtime)
		for i := range 900 {
			in := core.NewInputFrame()
			switch {
			case i == 0:
				in.Set(core.ActionConfirm)
			case i%5 == 0:
				in.Set(core.ActionFire)
			case i%97 == 0:
				in.Set(core.ActionSpecial)
			case i%151 == 0:
				in.Set(core.ActionSecondary)
			}
			if (i/60)%2 == 0 {
				in.Set(core.ActionLeft)
			} else {
				in.Set(core.ActionRight)
			}
			in.SetPointer(70, 3+i%15)
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
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t, 1))
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.Row(0), "Ammo: 999") {
		t.Errorf("HUD = %q, expected the ammo count", dst.Row(0))
	}
	if !strings.Contains(dst.String(), "A") {
		t.Error("ship not drawn")
	}
	if !strings.Contains(dst.String(), "SKY SHOOTER") {
		t.Error("idle screen does not show the title")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("shooter") {
		t.Error("shooter is not registered")
	}
}
