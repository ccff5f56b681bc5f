// Package clock provides the single-shot timer contract used to pace battle
// turns, with a wall-clock implementation and a manually advanced one.
package clock

import (
	"sort"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It reports false if the callback already ran
	// or the timer was stopped before.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules on the wall clock. Callbacks run on their own goroutine,
// so callers that need single-threaded delivery must wrap it.
type Real struct{}

// AfterFunc implements Scheduler with time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manual is a virtual clock for tests. Time only moves when Advance is
// called, and due callbacks run synchronously on the caller's goroutine.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m    *Manual
	due  time.Duration
	seq  int
	f    func()
	done bool
}

// NewManual returns a Manual clock at virtual time zero.
func NewManual() *Manual { return &Manual{} }

// AfterFunc registers f to run once the virtual clock reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, f: f}
	m.seq++
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}

// Advance moves virtual time forward by d, firing every timer that becomes
// due in deadline order. Timers scheduled by a callback fire in the same
// call if their deadline falls inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.advance(d)
}

func (m *Manual) advance(d time.Duration) int {
	fired := 0
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.remove(next)
		next.done = true
		if next.due > m.now {
			m.now = next.due
		}
		next.f()
		fired++
	}
	m.now = target
	return fired
}

// RunAll fires pending timers until none remain, advancing time as needed.
// It stops after maxRounds deadlines so a self-rescheduling callback cannot
// spin forever, and returns the number of callbacks fired.
func (m *Manual) RunAll(maxRounds int) int {
	fired := 0
	for round := 0; len(m.pending) > 0 && round < maxRounds; round++ {
		sort.SliceStable(m.pending, func(i, j int) bool { return less(m.pending[i], m.pending[j]) })
		fired += m.advance(m.pending[0].due - m.now)
	}
	return fired
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int { return len(m.pending) }

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.pending {
		if t.due > target {
			continue
		}
		if best == nil || less(t, best) {
			best = t
		}
	}
	return best
}

func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func less(a, b *manualTimer) bool {
	if a.due != b.due {
		return a.due < b.due
	}
	return a.seq < b.seq
}
