// Package session makes a battle safe to drive from many goroutines. Every
// command and every scheduled turn callback runs under one mutex, and the
// events the battle emits are buffered until the caller drains them.
package session

import (
	"sync"
	"time"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/clock"
	"boss-clicker/internal/progression"
)

// maxBuffered bounds the event buffer; the oldest events are dropped first.
const maxBuffered = 64

// Event is one buffered battle event, flattened for JSON.
type Event struct {
	Type    string               `json:"type"`
	Floater *battle.Floater      `json:"floater,omitempty"`
	Locked  *bool                `json:"locked,omitempty"`
	Victory *battle.VictoryEvent `json:"victory,omitempty"`
	Boss    string               `json:"boss,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Event types.
const (
	EventFloater  = "floater"
	EventTurnLock = "turn_locked"
	EventVictory  = "victory"
	EventDefeat   = "defeat"
	EventBoss     = "boss_changed"
	EventRejected = "rejected"
)

// Result is the state after a command plus every event since the last drain.
type Result struct {
	State  battle.Snapshot `json:"state"`
	Events []Event         `json:"events"`
}

// Session owns one Battle.
type Session struct {
	mu      sync.Mutex
	profile string
	b       *battle.Battle
	buf     *buffer
}

// New builds and starts a battle from cfg. cfg.Scheduler (clock.Real when
// nil) is wrapped so its callbacks take the session lock, and cfg.Observer
// is joined by the session's event buffer.
func New(profile string, cfg battle.Config) *Session {
	s := &Session{profile: profile, buf: &buffer{}}
	inner := cfg.Scheduler
	if inner == nil {
		inner = clock.Real{}
	}
	cfg.Scheduler = lockedScheduler{inner: inner, mu: &s.mu}
	if cfg.Observer == nil {
		cfg.Observer = s.buf
	} else {
		cfg.Observer = battle.Observers{cfg.Observer, s.buf}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.b = battle.New(cfg)
	s.b.Start()
	return s
}

// Profile names the save slot this session writes to.
func (s *Session) Profile() string { return s.profile }

// State returns the current snapshot and drains pending events.
func (s *Session) State() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result()
}

// Submit resolves one move.
func (s *Session) Submit(m battle.Move) (Result, error) {
	return s.do(func(b *battle.Battle) error { return b.SubmitMove(m) })
}

// Shop buys a stamina refill.
func (s *Session) Shop() (Result, error) {
	return s.do((*battle.Battle).RequestShopAction)
}

// Redeem applies a bonus code.
func (s *Session) Redeem(code string) (Result, error) {
	return s.do(func(b *battle.Battle) error { return b.RequestRedeem(code) })
}

// Progress returns the persisted progression state.
func (s *Session) Progress() progression.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.State()
}

// Close stops the battle's pending timers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Close()
}

func (s *Session) do(fn func(*battle.Battle) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.b)
	return s.result(), err
}

func (s *Session) result() Result {
	return Result{State: s.b.Snapshot(), Events: s.buf.drain()}
}

// lockedScheduler runs callbacks under the session mutex so timer-driven
// turns never race a command.
type lockedScheduler struct {
	inner clock.Scheduler
	mu    *sync.Mutex
}

func (l lockedScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	return l.inner.AfterFunc(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		f()
	})
}

// buffer records events. It is only touched with the session lock held.
type buffer struct {
	battle.NopObserver
	events []Event
}

func (b *buffer) push(e Event) {
	if len(b.events) >= maxBuffered {
		b.events = b.events[1:]
	}
	b.events = append(b.events, e)
}

func (b *buffer) drain() []Event {
	out := b.events
	b.events = nil
	if out == nil {
		out = []Event{}
	}
	return out
}

func (b *buffer) Floater(f battle.Floater) {
	b.push(Event{Type: EventFloater, Floater: &f})
}

func (b *buffer) TurnLocked(locked bool) {
	b.push(Event{Type: EventTurnLock, Locked: &locked})
}

func (b *buffer) Victory(ev battle.VictoryEvent) {
	b.push(Event{Type: EventVictory, Victory: &ev})
}

func (b *buffer) Defeat() { b.push(Event{Type: EventDefeat}) }

func (b *buffer) BossChanged(boss progression.Boss) {
	b.push(Event{Type: EventBoss, Boss: boss.Name})
}

func (b *buffer) Rejected(err error) {
	b.push(Event{Type: EventRejected, Error: err.Error()})
}
