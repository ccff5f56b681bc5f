package game

import (
	"log/slog"
	"sync/atomic"
	"time"

	"boss-clicker/internal/clock"

	"github.com/gdamore/tcell/v2"
)

const (
	postRetryInterval = 10 * time.Millisecond
	// postWarnAfter is how many failed posts pass before a full queue is logged.
	postWarnAfter = 20
)

// loopScheduler delivers timer callbacks through the screen's event queue,
// so they run on the goroutine polling events rather than a timer goroutine.
type loopScheduler struct {
	screen tcell.Screen
	logger *slog.Logger
}

func (s *loopScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &loopTimer{f: f}
	t.timer = time.AfterFunc(d, func() { s.post(t) })
	return t
}

// post retries while the event queue is full. A due callback is only given
// up once its timer is stopped.
func (s *loopScheduler) post(t *loopTimer) {
	ev := &timerEvent{timer: t}
	ev.SetEventNow()
	for i := 1; t.state.Load() == timerPending; i++ {
		if s.screen.PostEvent(ev) == nil {
			return
		}
		if i == postWarnAfter && s.logger != nil {
			s.logger.Warn("event queue full, turn timer delayed", "retries", i)
		}
		time.Sleep(postRetryInterval)
	}
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	f     func()
	state atomic.Int32
}

// Stop cancels the callback, including one already queued as an event.
func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}

// fire runs the callback unless it was stopped first. Called on the event
// loop goroutine.
func (t *loopTimer) fire() {
	if t.state.CompareAndSwap(timerPending, timerFired) {
		t.f()
	}
}

// timerEvent carries a due timer into the event loop.
type timerEvent struct {
	tcell.EventTime
	timer *loopTimer
}

// tickEvent wakes the loop to redraw fading floaters.
type tickEvent struct {
	tcell.EventTime
}
