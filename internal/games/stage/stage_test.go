package stage

import (
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

func testRules() sim.Rules {
	return sim.Rules{
		Bounds:  core.NewRectF(0, 0, 800, 230),
		MaxStep: 0.1,
		Archetypes: map[string]sim.Archetype{
			"hero": {Kind: sim.KindPlayer, Shape: sim.Box(100, 20), Speed: 100, Bounds: sim.BoundsClamp},
		},
		Player:      "hero",
		PlayerStart: core.V(400, 115),
		MaxHealth:   3,
	}
}

func testRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestViewportMapping(t *testing.T) {
	v := Fit(core.NewRectF(0, 0, 800, 230), core.NewRect(0, 1, 80, 23))

	tests := []struct {
		name  string
		p     core.Vec
		x, y  int
		valid bool
	}{
		{"origin", core.V(0, 0), 0, 1, true},
		{"middle", core.V(405, 115), 40, 12, true},
		{"last cell", core.V(799, 229), 79, 23, true},
		{"right of world", core.V(800, 100), 80, 11, false},
		{"above world", core.V(10, -1), 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := v.ToCell(tt.p)
			if x != tt.x || y != tt.y || ok != tt.valid {
				t.Errorf("ToCell(%v) = (%d, %d, %v), expected (%d, %d, %v)", tt.p, x, y, ok, tt.x, tt.y, tt.valid)
			}
		})
	}

	if got := v.ToWorld(40, 12); got != core.V(405, 115) {
		t.Errorf("ToWorld(40, 12) = %v, expected (405, 115)", got)
	}
	if got := v.ToWorld(-5, 100); got != core.V(5, 225) {
		t.Errorf("ToWorld() outside = %v, expected the clamped corner cell (5, 225)", got)
	}
}

func TestLifecycle(t *testing.T) {
	s := New(testRules(), testRuntime(), nil)

	if got := s.Lifecycle(frame(core.ActionPause)); len(got) != 0 {
		t.Errorf("Lifecycle(pause) while idle = %v, expected nothing", got)
	}
	s.Step(s.Lifecycle(frame(core.ActionConfirm)))
	if !s.State().Started || s.World().State() != sim.StateRunning {
		t.Fatalf("state after confirm = %v, expected running", s.World().State())
	}

	s.Step(s.Lifecycle(frame(core.ActionPause)))
	if !s.State().Paused {
		t.Fatal("State().Paused = false after pause")
	}
	s.Step(s.Lifecycle(frame(core.ActionPause)))
	if s.State().Paused {
		t.Fatal("State().Paused = true after second pause")
	}

	s.Step([]sim.Command{sim.End()})
	if !s.State().GameOver {
		t.Fatal("State().GameOver = false after End")
	}
	s.Step(s.Lifecycle(frame(core.ActionRestart)))
	if s.World().State() != sim.StateRunning || s.State().GameOver {
		t.Errorf("state after restart = %v, expected running", s.World().State())
	}
}

func TestStepPacesHostiles(t *testing.T) {
	dm := config.NewDifficultyManager(config.DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  config.ProgressionConfig{Type: "none"},
		Scaling:      config.ScalingConfig{SpeedMultiplier: 1},
	})
	s := New(testRules(), testRuntime(), dm)
	s.Step([]sim.Command{sim.Start()})
	if got := s.Snapshot().Pace; got != 1.5 {
		t.Errorf("Pace = %v, expected 1.5", got)
	}
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name   string
		in     core.InputFrame
		dx, dy float64
	}{
		{"none", frame(), 0, 0},
		{"left", frame(core.ActionLeft), -1, 0},
		{"down right", frame(core.ActionDown, core.ActionRight), 1, 1},
		{"opposites cancel", frame(core.ActionUp, core.ActionDown), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := Steer(tt.in)
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Steer() = (%v, %v), expected (%v, %v)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestPointerMovedOnlyOnChange(t *testing.T) {
	s := New(testRules(), testRuntime(), nil)
	in := frame()
	if _, ok := s.PointerMoved(in); ok {
		t.Error("PointerMoved() = true without a pointer")
	}
	in.SetPointer(40, 12)
	p, ok := s.PointerMoved(in)
	if !ok || p != core.V(405, 115) {
		t.Errorf("PointerMoved() = (%v, %v), expected ((405, 115), true)", p, ok)
	}
	if _, ok := s.PointerMoved(in); ok {
		t.Error("PointerMoved() = true for an unchanged pointer")
	}
}

func TestDrawEntities(t *testing.T) {
	s := New(testRules(), testRuntime(), nil)
	dst := core.NewScreen(80, 24)
	s.DrawEntities(dst, func(e sim.Entity) (Sprite, bool) {
		return Sprite{Rune: 'H', Color: core.ColorCyan}, true
	})

	// The 100x20 box around (400, 115) covers columns 35..44 on rows 11..13.
	for _, c := range []struct{ x, y int }{{35, 11}, {44, 13}, {40, 12}} {
		if got := dst.GetCell(c.x, c.y); got.Rune != 'H' || got.Color != core.ColorCyan {
			t.Errorf("cell (%d, %d) = %q, expected 'H'", c.x, c.y, got.Rune)
		}
	}
	for _, c := range []struct{ x, y int }{{34, 12}, {45, 12}, {40, 10}, {40, 14}} {
		if got := dst.Get(c.x, c.y); got == 'H' {
			t.Errorf("cell (%d, %d) drawn outside the box", c.x, c.y)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		expected          string
	}{
		{3, 3, 3, "[###]"},
		{1, 3, 3, "[#--]"},
		{0, 3, 3, "[---]"},
		{9, 3, 3, "[###]"},
		{1, 0, 3, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.max, tt.width); got != tt.expected {
			t.Errorf("Bar(%d, %d, %d) = %q, expected %q", tt.value, tt.max, tt.width, got, tt.expected)
		}
	}
}
