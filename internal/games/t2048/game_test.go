package t2048

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
	"github.com/vovakirdan/merge2048/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func stepWith(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q): %v", v.ID, err)
		}
		if g.ID() != v.ID {
			t.Errorf("ID() = %q, want %q", g.ID(), v.ID)
		}
	}
}

func TestVariantSettingsValid(t *testing.T) {
	for _, v := range Variants {
		if v.Custom {
			continue
		}
		if err := v.Settings.Validate(); err != nil {
			t.Errorf("variant %q: %v", v.ID, err)
		}
	}
	if _, ok := VariantByID("nope"); ok {
		t.Error("VariantByID should miss unknown ids")
	}
}

func TestDeterministicReset(t *testing.T) {
	v, _ := VariantByID("classic")

	g1 := New(v)
	g1.Reset(testConfig(12345))
	g2 := New(v)
	g2.Reset(testConfig(12345))

	for range 20 {
		stepWith(g1, core.ActionLeft)
		stepWith(g2, core.ActionLeft)
		stepWith(g1, core.ActionUp)
		stepWith(g2, core.ActionUp)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("same seed diverged:\n%+v\nvs\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestCleanupRunsOnTicks(t *testing.T) {
	v, _ := VariantByID("classic")
	g := New(v)
	g.Reset(testConfig(1))
	g.orch.tiles = []engine.Tile{
		{ID: 0, Pos: engine.Position{Row: 0, Col: 0}, Value: 1},
		{ID: 1, Pos: engine.Position{Row: 0, Col: 3}, Value: 1},
	}
	g.orch.ids = engine.NewIDPool(32, fixedRand{})
	_, _ = g.orch.ids.Take()
	_, _ = g.orch.ids.Take()

	stepWith(g, core.ActionLeft)
	if g.Frame().Phase != PhaseAnimating {
		t.Fatalf("phase = %s, want animating", g.Frame().Phase)
	}
	if g.State().Score != 4 {
		t.Errorf("score = %d, want 4", g.State().Score)
	}

	// 500ms at 60 ticks per second is 30 ticks; the tick length rounds down.
	for range 31 {
		stepWith(g)
	}
	if g.Frame().Phase != PhaseIdle {
		t.Errorf("phase = %s after 31 ticks, want idle", g.Frame().Phase)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	v, _ := VariantByID("classic")
	g := New(v)
	g.Reset(testConfig(3))
	before := g.Snapshot()

	res := stepWith(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	stepWith(g, core.ActionLeft)
	stepWith(g, core.ActionDown)
	if !reflect.DeepEqual(g.Snapshot().Grid, before.Grid) {
		t.Error("moves applied while paused")
	}

	res = stepWith(g, core.ActionPause)
	if res.State.Paused {
		t.Error("game should resume")
	}
}

func TestRestartStartsNewGame(t *testing.T) {
	v, _ := VariantByID("mini")
	g := New(v)
	g.Reset(testConfig(8))
	for range 10 {
		stepWith(g, core.ActionLeft)
		stepWith(g, core.ActionRight)
	}

	stepWith(g, core.ActionRestart)
	snap := g.Snapshot()
	if snap.Score != 0 || snap.Moves != 0 || snap.Lost {
		t.Errorf("after restart: %+v", snap)
	}
	if got := len(g.Frame().Tiles); got != 2 {
		t.Errorf("tiles after restart = %d, want 2", got)
	}
}

func TestRenderBoardAndLoss(t *testing.T) {
	v, _ := VariantByID("mini")
	g := New(v)
	g.Reset(testConfig(4))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "2048 Mini") {
		t.Error("title missing")
	}
	if !strings.Contains(out, "Score: 0") {
		t.Error("score missing")
	}

	g.orch.lost = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU LOSE") {
		t.Error("loss overlay missing")
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should follow the loss")
	}
}

func TestTooSmallScreen(t *testing.T) {
	v, _ := VariantByID("big")
	g := New(v)
	cfg := testConfig(1)
	cfg.ScreenW, cfg.ScreenH = 30, 10
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("small screen should pause")
	}
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message missing")
	}
}

func TestCustomVariantReadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	yaml := "board: {rows: 2, cols: 5}\nspawn: {initial_tiles: 3, values: [3]}\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	v, _ := VariantByID("custom")
	g := New(v)
	g.Reset(testConfig(2))

	frame := g.Frame()
	if frame.Shape != (engine.Shape{Rows: 2, Cols: 5}) {
		t.Errorf("shape = %+v", frame.Shape)
	}
	if len(frame.Tiles) != 3 {
		t.Errorf("tiles = %d, want 3", len(frame.Tiles))
	}
	for _, tile := range frame.Tiles {
		if tile.Number() != 8 {
			t.Errorf("spawned %d, want 8", tile.Number())
		}
	}
}

func TestCustomVariantFallsBackOnBadConfig(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	v, _ := VariantByID("custom")
	g := New(v)
	g.Reset(testConfig(2))

	if g.Frame().Shape != DefaultSettings().Shape {
		t.Errorf("shape = %+v, want default", g.Frame().Shape)
	}
	if g.State().GameOver {
		t.Error("config fallback should not end the game")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	v, _ := VariantByID("classic")
	g := New(v)
	g.Reset(testConfig(6))
	stepWith(g, core.ActionLeft)
	before := g.Snapshot()

	g.Resize(20, 8)
	if !g.State().Paused {
		t.Error("shrunk screen should pause")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("restored screen should resume")
	}
	if !reflect.DeepEqual(g.Snapshot().Grid, before.Grid) {
		t.Error("resize changed the board")
	}
}
