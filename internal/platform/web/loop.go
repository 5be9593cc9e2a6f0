package web

import (
	"context"
	"time"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

// loop is a single-goroutine event queue. Everything that touches a
// connection's orchestrator runs inside run.
type loop struct {
	events chan func()
	done   chan struct{}
}

func newLoop(buffer int) *loop {
	return &loop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

// post queues fn. It reports false once the loop has stopped.
func (l *loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// run executes queued events until ctx is done.
func (l *loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			fn()
		}
	}
}

// loopScheduler fires callbacks on the loop goroutine via time.AfterFunc.
type loopScheduler struct {
	loop *loop
}

var _ t2048.Scheduler = loopScheduler{}

// loopTask is created, canceled and fired on the loop goroutine only.
type loopTask struct {
	timer *time.Timer
	done  bool
}

// Cancel stops the timer. A callback already queued on the loop is skipped.
func (t *loopTask) Cancel() {
	t.done = true
	t.timer.Stop()
}

func (s loopScheduler) ScheduleAfter(d time.Duration, fn func()) t2048.CancelToken {
	task := &loopTask{}
	task.timer = time.AfterFunc(d, func() {
		s.loop.post(func() {
			if task.done {
				return
			}
			task.done = true
			fn()
		})
	})
	return task
}
