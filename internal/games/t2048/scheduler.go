package t2048

import (
	"slices"
	"time"
)

// CancelToken cancels a scheduled callback. Canceling a callback that has
// already fired or been canceled is a no-op.
type CancelToken interface {
	Cancel()
}

// Scheduler runs fn once after delay d on the owner's event loop.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func()) CancelToken
}

type tickTask struct {
	due      time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

func (t *tickTask) Cancel() {
	t.canceled = true
}

// TickScheduler is a virtual clock. Callbacks fire only inside Advance, on
// the caller's goroutine, ordered by due time and then by scheduling order.
type TickScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*tickTask
}

// NewTickScheduler returns a clock at time zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// ScheduleAfter queues fn to run once the clock has advanced by d.
func (s *TickScheduler) ScheduleAfter(d time.Duration, fn func()) CancelToken {
	s.seq++
	task := &tickTask{due: s.now + max(d, 0), seq: s.seq, fn: fn}
	s.pending = append(s.pending, task)
	return task
}

// Advance moves the clock forward by d and runs every callback that became due.
// Callbacks scheduled by a running callback fire in the same call if they are due.
func (s *TickScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		task := s.nextDue()
		if task == nil {
			return
		}
		task.fn()
	}
}

// nextDue removes and returns the earliest live due task.
func (s *TickScheduler) nextDue() *tickTask {
	s.pending = slices.DeleteFunc(s.pending, func(t *tickTask) bool {
		return t.canceled
	})
	best := -1
	for i, t := range s.pending {
		if t.due > s.now {
			continue
		}
		if best == -1 || t.due < s.pending[best].due ||
			(t.due == s.pending[best].due && t.seq < s.pending[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	task := s.pending[best]
	s.pending = slices.Delete(s.pending, best, best+1)
	return task
}

// Now returns the virtual time elapsed since creation.
func (s *TickScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live callbacks not yet fired.
func (s *TickScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}
