package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/clock"
	"boss-clicker/internal/progression"
	"boss-clicker/internal/save"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestSession(t *testing.T, state progression.State) (*Session, *clock.Manual) {
	t.Helper()
	mc := clock.NewManual()
	s := New("test", battle.Config{State: state, Scheduler: mc, Logger: quietLogger()})
	t.Cleanup(s.Close)
	return s, mc
}

func eventTypes(evs []Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestNewDrainsStartEvents(t *testing.T) {
	s, _ := newTestSession(t, progression.State{})
	res := s.State()
	if res.State.Level != 1 || res.State.Phase != battle.PhasePlayerTurn {
		t.Fatalf("state = %+v", res.State)
	}
	got := eventTypes(res.Events)
	if len(got) != 2 || got[0] != EventBoss || got[1] != EventTurnLock {
		t.Errorf("start events = %v", got)
	}
	if again := s.State(); len(again.Events) != 0 {
		t.Errorf("events not drained: %v", eventTypes(again.Events))
	}
}

func TestSubmitRunsEnemyTurnThroughLockedScheduler(t *testing.T) {
	s, mc := newTestSession(t, progression.State{})
	s.State()

	res, err := s.Submit(battle.MoveBasicAttack)
	if err != nil {
		t.Fatal(err)
	}
	if res.State.Phase != battle.PhaseEnemyTurn || res.State.BossHP != 88 {
		t.Fatalf("after attack: %+v", res.State)
	}

	mc.Advance(battle.DefaultRules().ThinkDelay)
	res = s.State()
	if res.State.Phase != battle.PhasePlayerTurn {
		t.Fatalf("phase = %v after enemy turn", res.State.Phase)
	}
	if res.State.PlayerHP != 99 {
		t.Errorf("PlayerHP = %d, want 99", res.State.PlayerHP)
	}
	var sawHit bool
	for _, e := range res.Events {
		if e.Type == EventFloater && e.Floater.Text == "TOOK 11 DMG!" {
			sawHit = true
		}
	}
	if !sawHit {
		t.Errorf("missing enemy hit floater in %v", eventTypes(res.Events))
	}
}

func TestRejectionIsBufferedAndReturned(t *testing.T) {
	s, _ := newTestSession(t, progression.State{})
	s.State()
	if _, err := s.Submit(battle.MoveDefend); err != nil {
		t.Fatal(err)
	}
	res, err := s.Submit(battle.MoveDefend)
	if !errors.Is(err, battle.ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
	last := res.Events[len(res.Events)-1]
	if last.Type != EventRejected || last.Error == "" {
		t.Errorf("last event = %+v", last)
	}
}

func TestShopAndRedeem(t *testing.T) {
	s, _ := newTestSession(t, progression.State{Level: 1, Currency: 30})
	if _, err := s.Submit(battle.MoveSpecial); err != nil {
		t.Fatal(err)
	}
	res, err := s.Shop()
	if err != nil {
		t.Fatal(err)
	}
	if res.State.Energy != res.State.MaxEnergy {
		t.Errorf("energy = %d after shop", res.State.Energy)
	}
	res, err = s.Redeem(" welcome ")
	if err != nil {
		t.Fatal(err)
	}
	// 30 + 50 victory - 20 shop + 100 redeem
	if res.State.Currency != 160 {
		t.Errorf("Currency = %d, want 160", res.State.Currency)
	}
}

func TestBufferDropsOldest(t *testing.T) {
	b := &buffer{}
	for i := 0; i < maxBuffered+5; i++ {
		b.Defeat()
	}
	b.Rejected(errors.New("last"))
	evs := b.drain()
	if len(evs) != maxBuffered {
		t.Fatalf("len = %d, want %d", len(evs), maxBuffered)
	}
	if evs[len(evs)-1].Error != "last" {
		t.Errorf("newest event lost")
	}
}

func TestConcurrentCommandsAreSerialized(t *testing.T) {
	s := New("race", battle.Config{Scheduler: clock.NewManual(), Logger: quietLogger()})
	defer s.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Submit(battle.MoveBasicAttack); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Errorf("accepted = %d, want exactly one move per turn", accepted)
	}
}

type memStore struct {
	mu   sync.Mutex
	recs map[string]save.Record
}

func (m *memStore) Load(_ context.Context, p string) (save.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[p]
	if !ok {
		return save.Record{}, save.ErrNotFound
	}
	return r, nil
}

func (m *memStore) Save(_ context.Context, p string, r save.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[p] = r
	return nil
}

func TestManagerLoadsAndPersistsPerProfile(t *testing.T) {
	store := &memStore{recs: map[string]save.Record{"alice": {Level: 9, Money: 5}}}
	var victories int
	m := NewManager(Options{
		Store:     store,
		Scheduler: clock.NewManual(),
		Logger:    quietLogger(),
		History: func(string) battle.Observer {
			return victoryCounter{n: &victories}
		},
	})
	defer m.Close()

	alice := m.Get(context.Background(), "alice")
	if got := alice.Progress().Level; got != 9 {
		t.Fatalf("alice level = %d, want 9", got)
	}
	if m.Get(context.Background(), "alice") != alice {
		t.Error("Get must return the same session for a profile")
	}

	bob := m.Get(context.Background(), "bob")
	if _, err := bob.Submit(battle.MoveSpecial); err != nil {
		t.Fatal(err)
	}
	if got := store.recs["bob"]; got.Level != 2 || got.Money != 50 {
		t.Errorf("bob saved = %+v", got)
	}
	if victories != 1 {
		t.Errorf("history saw %d victories", victories)
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d", m.Len())
	}
}

type victoryCounter struct {
	battle.NopObserver
	n *int
}

func (v victoryCounter) Victory(battle.VictoryEvent) { *v.n++ }
