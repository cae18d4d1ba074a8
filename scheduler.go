package battery

import (
	"slices"
	"time"
)

// Scheduler defers work without real timers. A turn is one macro task plus
// the microtasks it queued.
type Scheduler interface {
	// AfterCurrentTurn runs fn as a new macro task, after the current task
	// and its microtasks complete.
	AfterCurrentTurn(fn func())
	// AfterMicrotask runs fn when the current task finishes, before the next
	// macro task.
	AfterMicrotask(fn func())
	// After runs fn as a macro task once d has elapsed on the loop clock.
	After(d time.Duration, fn func())
}

type loopTimer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// maxFlushTurns bounds Flush against tasks that reschedule themselves forever.
const maxFlushTurns = 1 << 16

// Loop is a single-threaded Scheduler driven by Advance. Nothing runs on its
// own; the Stage advances the loop once per tick, tests advance it by hand.
type Loop struct {
	macro  []func()
	micro  []func()
	timers []loopTimer
	now    time.Duration
	seq    uint64
}

// NewLoop creates an idle loop at clock zero.
func NewLoop() *Loop {
	return &Loop{}
}

// AfterCurrentTurn queues fn as a macro task.
func (l *Loop) AfterCurrentTurn(fn func()) {
	l.macro = append(l.macro, fn)
}

// AfterMicrotask queues fn as a microtask.
func (l *Loop) AfterMicrotask(fn func()) {
	l.micro = append(l.micro, fn)
}

// After queues fn to become a macro task once the clock passes now+d.
func (l *Loop) After(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, loopTimer{due: l.now + d, seq: l.seq, fn: fn})
}

// Run executes fn as a task and drains the microtasks it queued.
func (l *Loop) Run(fn func()) {
	fn()
	l.drainMicrotasks()
}

// drainMicrotasks runs microtasks until none remain, including ones queued
// by microtasks.
func (l *Loop) drainMicrotasks() {
	for len(l.micro) > 0 {
		fn := l.micro[0]
		copy(l.micro, l.micro[1:])
		l.micro[len(l.micro)-1] = nil
		l.micro = l.micro[:len(l.micro)-1]
		fn()
	}
}

// Advance moves the clock forward by dt and runs one turn for every macro
// task pending at the time of the call, followed by timers that came due in
// deadline order. Tasks queued during this call wait for the next Advance.
func (l *Loop) Advance(dt time.Duration) {
	l.drainMicrotasks()
	l.now += dt

	pending := l.macro
	l.macro = nil
	pending = append(pending, l.takeDueTimers()...)

	for _, fn := range pending {
		l.Run(fn)
	}
}

// takeDueTimers removes and returns the callbacks of timers due at or before
// the current clock, ordered by deadline then insertion.
func (l *Loop) takeDueTimers() []func() {
	if len(l.timers) == 0 {
		return nil
	}
	slices.SortStableFunc(l.timers, func(a, b loopTimer) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		if a.seq > b.seq {
			return 1
		}
		return 0
	})
	var due []func()
	i := 0
	for ; i < len(l.timers) && l.timers[i].due <= l.now; i++ {
		due = append(due, l.timers[i].fn)
	}
	l.timers = append(l.timers[:0], l.timers[i:]...)
	return due
}

// Flush runs turns until no task, microtask, or timer remains, jumping the
// clock to each timer deadline. Returns the number of turns run.
func (l *Loop) Flush() int {
	turns := 0
	for turns < maxFlushTurns {
		l.drainMicrotasks()
		if len(l.macro) == 0 {
			if len(l.timers) == 0 {
				return turns
			}
			next := l.timers[0].due
			for _, t := range l.timers[1:] {
				next = min(next, t.due)
			}
			l.Advance(next - l.now)
		} else {
			l.Advance(0)
		}
		turns++
	}
	return turns
}

// Now returns the loop clock.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Pending returns the number of queued macro tasks, microtasks, and timers.
func (l *Loop) Pending() int {
	return len(l.macro) + len(l.micro) + len(l.timers)
}
