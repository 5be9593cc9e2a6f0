package t2048

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
	"github.com/vovakirdan/merge2048/internal/registry"
)

// Game adapts an Orchestrator to the fixed-tick front-end loop. Each Step
// advances a virtual clock by one tick so clean-ups fire on schedule.
type Game struct {
	variant Variant
	sched   *TickScheduler
	orch    *Orchestrator
	tick    uint64
	tickDur time.Duration

	screenW int
	screenH int

	paused   bool
	tooSmall bool
	warning  string // config problem; the game runs on defaults
	err      error  // engine failure; ends the game
}

// Package-level settings shared by all game instances.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the YAML file the custom variant reads. Empty means
// the default search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	logger = l
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048 " + g.variant.Name
}

// Variant returns the board preset the game was created with.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(rate)
	g.tick = 0
	g.paused = false
	g.err = nil
	g.warning = ""
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	settings, err := g.variant.LoadSettings()
	if err != nil {
		logger.Warn("load config, using defaults", "variant", g.variant.ID, "err", err)
		g.warning = "config error, using defaults"
		settings = DefaultSettings()
	}

	g.sched = NewTickScheduler()
	g.orch = NewOrchestrator(settings, g.sched, engine.NewRand(cfg.Seed),
		WithLogger(logger.With("variant", g.variant.ID)))
	if err := g.orch.Reset(settings); err != nil {
		g.err = err
	}
	g.checkScreenSize()
}

// checkScreenSize checks if the screen fits the board and HUD.
func (g *Game) checkScreenSize() {
	w, h := boardSize(g.orch.Settings().Shape)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Resize adapts to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.orch != nil {
		g.checkScreenSize()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.sched.Advance(g.tickDur)

	if in.Has(core.ActionRestart) {
		if err := g.orch.Reset(g.orch.Settings()); err != nil {
			g.err = err
		}
		return core.StepResult{State: g.State()}
	}

	if a, ok := in.Directional(); ok {
		if err := g.orch.HandleMove(directionFor(a)); err != nil {
			g.err = err
		}
	}

	return core.StepResult{State: g.State()}
}

func directionFor(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.DirUp
	case core.ActionDown:
		return engine.DirDown
	case core.ActionRight:
		return engine.DirRight
	default:
		return engine.DirLeft
	}
}

// Frame returns the orchestrator's current frame.
func (g *Game) Frame() Frame {
	return g.orch.Frame()
}

// Err returns the last failure, or nil.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.orch == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.orch.Score(),
		GameOver: g.orch.Lost() || g.err != nil,
		Paused:   g.paused || g.tooSmall,
	}
}
