package t2048

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
)

// DefaultCleanupDelay is the time merge sources stay on the board.
const DefaultCleanupDelay = 500 * time.Millisecond

// ErrCleanupWhileIdle signals a clean-up callback that fired outside an
// animation. It is raised as a panic: it can only come from a scheduling bug.
var ErrCleanupWhileIdle = errors.New("t2048: clean-up fired while idle")

// Phase is the turn state of the orchestrator.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnimating
)

func (p Phase) String() string {
	if p == PhaseAnimating {
		return "animating"
	}
	return "idle"
}

// Settings are read at reset time. Changing them mid-game has no effect
// until the next Reset.
type Settings struct {
	Shape        engine.Shape
	InitialTiles int
	Values       []int
	CleanupDelay time.Duration
}

// DefaultSettings returns the classic 4×4 board.
func DefaultSettings() Settings {
	return Settings{
		Shape:        engine.Shape{Rows: 4, Cols: 4},
		InitialTiles: 4,
		Values:       []int{1, 2},
		CleanupDelay: DefaultCleanupDelay,
	}
}

// Validate checks that the settings describe a playable board.
func (s Settings) Validate() error {
	switch {
	case s.Shape.Rows < 1 || s.Shape.Cols < 1:
		return fmt.Errorf("t2048: invalid shape %dx%d", s.Shape.Rows, s.Shape.Cols)
	case len(s.Values) == 0:
		return fmt.Errorf("t2048: %w", engine.ErrNoSpawnValues)
	case s.InitialTiles < 0:
		return fmt.Errorf("t2048: negative initial tile count %d", s.InitialTiles)
	case s.CleanupDelay < 0:
		return fmt.Errorf("t2048: negative clean-up delay %s", s.CleanupDelay)
	}
	for _, v := range s.Values {
		if v < 1 {
			return fmt.Errorf("t2048: spawn value %d is not a positive level", v)
		}
	}
	return nil
}

// Frame is what renderers receive after every state change.
type Frame struct {
	Tiles []engine.Tile
	Lost  bool
	Score int
	Phase Phase
	Moves int
	Shape engine.Shape
}

// MaxValue returns the highest tile level in the frame.
func (f Frame) MaxValue() int {
	return engine.MaxValue(f.Tiles)
}

// MaxNumber returns the highest displayed number, or 0 on an empty board.
func (f Frame) MaxNumber() int {
	if len(f.Tiles) == 0 {
		return 0
	}
	return 1 << f.MaxValue()
}

// Publisher receives frames. It is called on the orchestrator's goroutine.
type Publisher func(Frame)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithPublisher sets the frame consumer.
func WithPublisher(p Publisher) Option {
	return func(o *Orchestrator) {
		o.publish = p
	}
}

// Orchestrator sequences turns: it applies moves, spawns tiles, keeps score
// and owns the deferred clean-up of merge sources. It is not safe for
// concurrent use; all calls and scheduled callbacks must run on one goroutine.
type Orchestrator struct {
	settings Settings
	sched    Scheduler
	rng      engine.Rand
	log      *log.Logger
	publish  Publisher

	tiles   []engine.Tile
	ids     *engine.IDPool
	free    *engine.PositionPool
	phase   Phase
	lost    bool
	score   int
	moves   int
	pending CancelToken
}

// NewOrchestrator creates an orchestrator for settings. The board is empty
// until Reset is called.
func NewOrchestrator(settings Settings, sched Scheduler, rng engine.Rand, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		settings: settings,
		sched:    sched,
		rng:      rng,
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Reset starts a new game with settings. A pending clean-up is canceled,
// both pools are rebuilt and min(InitialTiles, cells) tiles are spawned.
func (o *Orchestrator) Reset(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	o.cancelPending()

	shape := settings.Shape
	o.settings = settings
	o.ids = engine.NewIDPool(2*shape.Cells(), o.rng)
	o.free = engine.NewPositionPool(shape, o.rng)
	o.tiles = nil
	o.phase = PhaseIdle
	o.lost = false
	o.score = 0
	o.moves = 0

	for range min(settings.InitialTiles, shape.Cells()) {
		tile, err := engine.Spawn(o.free, o.ids, settings.Values, o.rng)
		if err != nil {
			return fmt.Errorf("t2048: reset: %w", err)
		}
		o.tiles = append(o.tiles, tile)
	}

	o.log.Debug("reset", "rows", shape.Rows, "cols", shape.Cols, "tiles", len(o.tiles))
	o.emit()
	return nil
}

// HandleMove applies one directional input. Input after a loss is ignored.
// A move during an animation first settles the previous move; if that
// reveals a loss, the loss is published and the input is dropped.
func (o *Orchestrator) HandleMove(dir engine.Direction) error {
	if o.ids == nil {
		return errors.New("t2048: move before reset")
	}
	if o.lost {
		return nil
	}
	if o.phase == PhaseAnimating {
		o.cancelPending()
		o.settle()
		if o.lost {
			o.emit()
			return nil
		}
	}

	shape := o.settings.Shape
	next, moved, err := engine.Apply(o.tiles, shape, dir, o.ids)
	if err != nil {
		o.log.Error("move failed", "dir", dir, "err", err)
		return fmt.Errorf("t2048: move %s: %w", dir, err)
	}

	o.free.Refill(engine.TilesToBoard(next, shape).FreeCells())
	if moved {
		tile, err := engine.Spawn(o.free, o.ids, o.settings.Values, o.rng)
		if err != nil {
			o.ids.Release(popupIDs(next)...)
			o.log.Error("spawn failed", "dir", dir, "err", err)
			return fmt.Errorf("t2048: move %s: %w", dir, err)
		}
		next = append(next, tile)
		o.moves++
	}

	o.tiles = next
	gained := engine.PopupScore(next)
	o.score += gained
	o.phase = PhaseAnimating
	o.pending = o.sched.ScheduleAfter(o.settings.CleanupDelay, o.onCleanup)

	o.log.Debug("move", "dir", dir, "moved", moved, "gained", gained, "score", o.score)
	o.emit()
	return nil
}

// Settle runs a pending clean-up immediately. It does nothing while idle.
func (o *Orchestrator) Settle() {
	if o.phase != PhaseAnimating {
		return
	}
	o.cancelPending()
	o.settle()
	o.emit()
}

func (o *Orchestrator) onCleanup() {
	if o.phase != PhaseAnimating {
		panic(ErrCleanupWhileIdle)
	}
	o.pending = nil
	o.settle()
	o.emit()
}

// settle strips merge sources, recycles their ids and re-evaluates the loss.
func (o *Orchestrator) settle() {
	tiles, released := engine.Cleanup(o.tiles)
	o.ids.Release(released...)
	o.tiles = tiles
	o.phase = PhaseIdle
	o.lost = engine.IsLost(tiles, o.settings.Shape)
	if o.lost {
		o.log.Info("game lost", "score", o.score, "moves", o.moves, "max", 1<<engine.MaxValue(tiles))
	}
}

func (o *Orchestrator) cancelPending() {
	if o.pending != nil {
		o.pending.Cancel()
		o.pending = nil
	}
}

func (o *Orchestrator) emit() {
	if o.publish != nil {
		o.publish(o.Frame())
	}
}

// Frame returns a copy of the current state.
func (o *Orchestrator) Frame() Frame {
	return Frame{
		Tiles: slices.Clone(o.tiles),
		Lost:  o.lost,
		Score: o.score,
		Phase: o.phase,
		Moves: o.moves,
		Shape: o.settings.Shape,
	}
}

// Settings returns the settings of the current game.
func (o *Orchestrator) Settings() Settings {
	return o.settings
}

// Lost reports whether the game is over.
func (o *Orchestrator) Lost() bool {
	return o.lost
}

// Score returns the accumulated score.
func (o *Orchestrator) Score() int {
	return o.score
}

// Phase returns the current turn phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// FreeIDs returns the number of unused tile identities.
func (o *Orchestrator) FreeIDs() int {
	if o.ids == nil {
		return 0
	}
	return o.ids.Len()
}

// IDFree reports whether id is in the identity pool.
func (o *Orchestrator) IDFree(id int) bool {
	return o.ids != nil && o.ids.Contains(id)
}

func popupIDs(tiles []engine.Tile) []int {
	return lo.FilterMap(tiles, func(t engine.Tile, _ int) (int, bool) {
		return t.ID, t.Animation == engine.AnimPopup
	})
}
