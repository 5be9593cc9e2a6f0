package t2048

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
)

// fixedRand never shuffles and always picks the first spawn value, so
// spawns land on the first free cell in row-major order.
type fixedRand struct{}

func (fixedRand) Intn(int) int                { return 0 }
func (fixedRand) Shuffle(int, func(i, j int)) {}

type harness struct {
	o      *Orchestrator
	sched  *TickScheduler
	frames []Frame
}

func newHarness(t *testing.T, settings Settings, rng engine.Rand) *harness {
	t.Helper()
	h := &harness{sched: NewTickScheduler()}
	h.o = NewOrchestrator(settings, h.sched, rng, WithPublisher(func(f Frame) {
		h.frames = append(h.frames, f)
	}))
	if err := h.o.Reset(settings); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return h
}

// place replaces the board with tiles built from a value grid (0 is empty).
// Ids are assigned in reading order and the identity pool is rebuilt to match.
func (h *harness) place(grid [][]int) {
	o := h.o
	o.cancelPending()
	o.tiles = nil
	for r, row := range grid {
		for c, v := range row {
			if v != 0 {
				o.tiles = append(o.tiles, engine.Tile{ID: len(o.tiles), Pos: engine.Position{Row: r, Col: c}, Value: v})
			}
		}
	}
	o.ids = engine.NewIDPool(2*o.settings.Shape.Cells(), fixedRand{})
	for range o.tiles {
		_, _ = o.ids.Take()
	}
	o.phase = PhaseIdle
	o.lost = false
	o.score = 0
	h.frames = nil
}

func settings(rows, cols, initial int, values ...int) Settings {
	return Settings{
		Shape:        engine.Shape{Rows: rows, Cols: cols},
		InitialTiles: initial,
		Values:       values,
		CleanupDelay: 500 * time.Millisecond,
	}
}

func TestResetSpawnsInitialTiles(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, DefaultSettings(), engine.NewRand(5))

	frame := h.o.Frame()
	is.Equal(len(frame.Tiles), 4)
	is.Equal(frame.Score, 0)
	is.Equal(frame.Phase, PhaseIdle)
	is.True(!frame.Lost)
	is.Equal(len(h.frames), 1)

	seen := map[engine.Position]bool{}
	for _, tile := range frame.Tiles {
		is.Equal(tile.Animation, engine.AnimAppear)
		is.True(tile.Value == 1 || tile.Value == 2)
		is.True(!seen[tile.Pos])
		is.True(!h.o.IDFree(tile.ID))
		seen[tile.Pos] = true
	}
	is.Equal(h.o.FreeIDs(), 32-4)
}

func TestResetClampsInitialTiles(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 2, 5, 1), fixedRand{})
	is.Equal(len(h.o.Frame().Tiles), 2)
}

func TestResetRejectsInvalidSettings(t *testing.T) {
	is := is.New(t)
	o := NewOrchestrator(DefaultSettings(), NewTickScheduler(), fixedRand{})
	is.True(o.Reset(settings(0, 4, 2, 1)) != nil)
	is.True(errors.Is(o.Reset(settings(4, 4, 2)), engine.ErrNoSpawnValues))
	is.True(o.HandleMove(engine.DirLeft) != nil)
}

func TestMoveThenDeferredCleanup(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 4, 0, 1), fixedRand{})
	h.place([][]int{{1, 1, 0, 0}})

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	frame := h.o.Frame()
	is.Equal(frame.Phase, PhaseAnimating)
	is.Equal(frame.Score, 4)
	is.Equal(frame.Moves, 1)
	is.Equal(len(frame.Tiles), 4) // two sources, product, spawn
	is.Equal(NumberGrid(frame), [][]int{{4, 2, 0, 0}})

	h.sched.Advance(499 * time.Millisecond)
	is.Equal(h.o.Phase(), PhaseAnimating)

	h.sched.Advance(time.Millisecond)
	frame = h.o.Frame()
	is.Equal(frame.Phase, PhaseIdle)
	is.Equal(len(frame.Tiles), 2)
	for _, tile := range frame.Tiles {
		is.Equal(tile.Animation, engine.AnimNone)
		is.True(!tile.Merged)
	}
	is.True(h.o.IDFree(0))
	is.True(h.o.IDFree(1))
	is.Equal(len(h.frames), 2)
}

func TestMoveWithoutChangeSpawnsNothing(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 4, 0, 1), fixedRand{})
	h.place([][]int{{1, 2, 0, 0}})
	free := h.o.FreeIDs()

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	is.Equal(len(h.o.Frame().Tiles), 2)
	is.Equal(h.o.FreeIDs(), free)
	is.Equal(h.o.Frame().Moves, 0)
	is.Equal(h.o.Phase(), PhaseAnimating)
}

func TestMoveDuringAnimationSettlesFirst(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 4, 0, 1), fixedRand{})
	h.place([][]int{{1, 1, 0, 0}})

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	is.NoErr(h.o.HandleMove(engine.DirRight))

	frame := h.o.Frame()
	is.Equal(frame.Phase, PhaseAnimating)
	is.Equal(h.sched.Pending(), 1)
	is.Equal(NumberGrid(frame), [][]int{{2, 0, 4, 2}})
	is.Equal(frame.Score, 4)
	is.True(h.o.IDFree(0))
	is.True(h.o.IDFree(1))
	for _, tile := range frame.Tiles {
		is.True(!tile.Merged)
	}

	h.sched.Advance(time.Second)
	is.Equal(h.o.Phase(), PhaseIdle)
}

func TestCleanupDetectsLoss(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 2, 0, 1), fixedRand{})
	h.place([][]int{{1, 2}})

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	is.True(!h.o.Lost())

	h.sched.Advance(500 * time.Millisecond)
	is.True(h.o.Lost())
	is.True(h.frames[len(h.frames)-1].Lost)

	published := len(h.frames)
	is.NoErr(h.o.HandleMove(engine.DirRight))
	is.Equal(len(h.frames), published)
	is.Equal(h.sched.Pending(), 0)
}

func TestPreemptingMoveRevealsLoss(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 2, 0, 1), fixedRand{})
	h.place([][]int{{1, 2}})

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	is.NoErr(h.o.HandleMove(engine.DirLeft))

	is.True(h.o.Lost())
	is.Equal(h.o.Phase(), PhaseIdle)
	is.Equal(h.sched.Pending(), 0)
	is.True(h.frames[len(h.frames)-1].Lost)
}

func TestCleanupWhileIdlePanics(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, DefaultSettings(), fixedRand{})

	defer func() {
		r := recover()
		err, ok := r.(error)
		is.True(ok)
		is.True(errors.Is(err, ErrCleanupWhileIdle))
	}()
	h.o.onCleanup()
}

func TestResetCancelsPendingCleanup(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 4, 0, 1), fixedRand{})
	h.place([][]int{{1, 1, 0, 0}})

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	is.Equal(h.sched.Pending(), 1)

	is.NoErr(h.o.Reset(settings(2, 2, 1, 1)))
	is.Equal(h.sched.Pending(), 0)
	h.sched.Advance(time.Second) // a stale clean-up would panic here
	is.Equal(h.o.Phase(), PhaseIdle)
	is.Equal(h.o.Score(), 0)
	is.Equal(h.o.Frame().Shape, engine.Shape{Rows: 2, Cols: 2})
}

func TestSettle(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, settings(1, 4, 0, 1), fixedRand{})
	h.place([][]int{{2, 2, 0, 0}})

	h.o.Settle()
	is.Equal(len(h.frames), 0) // idle: nothing to do

	is.NoErr(h.o.HandleMove(engine.DirLeft))
	h.o.Settle()
	is.Equal(h.o.Phase(), PhaseIdle)
	is.Equal(h.sched.Pending(), 0)
	is.Equal(NumberGrid(h.o.Frame()), [][]int{{8, 2, 0, 0}})
}

func TestIdentityUniquenessOverLongGame(t *testing.T) {
	is := is.New(t)
	s := DefaultSettings()
	h := newHarness(t, s, engine.NewRand(99))
	pick := engine.NewRand(7)
	dirs := engine.Directions()
	capacity := 2 * s.Shape.Cells()

	lastScore := 0
	for step := 0; step < 400 && !h.o.Lost(); step++ {
		is.NoErr(h.o.HandleMove(dirs[pick.Intn(len(dirs))]))
		if pick.Intn(3) == 0 {
			h.sched.Advance(s.CleanupDelay)
		} else {
			h.o.Settle()
		}

		frame := h.o.Frame()
		is.True(frame.Score >= lastScore)
		lastScore = frame.Score

		ids := map[int]bool{}
		cells := map[engine.Position]bool{}
		for _, tile := range frame.Tiles {
			is.True(!ids[tile.ID])
			is.True(!cells[tile.Pos])
			is.True(!h.o.IDFree(tile.ID))
			is.True(s.Shape.Contains(tile.Pos))
			ids[tile.ID] = true
			cells[tile.Pos] = true
		}
		is.Equal(len(frame.Tiles)+h.o.FreeIDs(), capacity)
	}
}
