package session

import (
	"context"
	"log/slog"
	"sync"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/clock"
	"boss-clicker/internal/save"
)

// Options configure the battles a Manager creates.
type Options struct {
	Store     save.Store
	Rules     *battle.Rules
	Scheduler clock.Scheduler
	Logger    *slog.Logger
	// History, when set, receives every battle's events alongside the
	// session buffer. It is called under the owning session's lock.
	History func(profile string) battle.Observer
}

// Manager keeps one Session per profile, created on first use from the
// profile's saved progress.
type Manager struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty Manager.
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{opts: opts, sessions: make(map[string]*Session)}
}

// Get returns the profile's session, loading its progress the first time.
func (m *Manager) Get(ctx context.Context, profile string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[profile]; ok {
		return s
	}

	cfg := battle.Config{
		State:     save.LoadState(ctx, m.opts.Store, profile, m.opts.Logger),
		Rules:     m.opts.Rules,
		Scheduler: m.opts.Scheduler,
		Saver:     save.Binder{Store: m.opts.Store, Profile: profile},
		Logger:    m.opts.Logger.With("profile", profile),
	}
	if m.opts.History != nil {
		cfg.Observer = m.opts.History(profile)
	}
	s := New(profile, cfg)
	m.sessions[profile] = s
	m.opts.Logger.Info("session started", "profile", profile, "level", s.Progress().Level)
	return s
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p, s := range m.sessions {
		s.Close()
		delete(m.sessions, p)
	}
}
