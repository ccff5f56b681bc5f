// Package save persists the progression snapshot and the encounter history.
// Reads never fail the game: a missing or unreadable snapshot falls back to
// a fresh level-1 state.
package save

import (
	"context"
	"errors"
	"log/slog"

	"boss-clicker/internal/progression"
)

var (
	// ErrNotFound means no snapshot exists for the profile yet.
	ErrNotFound = errors.New("save not found")
	// ErrCorrupt means a snapshot exists but cannot be decoded.
	ErrCorrupt = errors.New("save corrupt")
)

// DefaultProfile names the save slot used by single-player frontends.
const DefaultProfile = "local"

// Record is the persisted key-value snapshot.
type Record struct {
	Level          int `json:"level"`
	Money          int `json:"money"`
	PhotosUnlocked int `json:"photosUnlocked"`
}

// FromState converts a progression state into its persisted form.
func FromState(s progression.State) Record {
	return Record{Level: s.Level, Money: s.Currency, PhotosUnlocked: s.Rewards}
}

// State converts the record back, normalized onto the progression invariants.
func (r Record) State() progression.State {
	return progression.Normalize(progression.State{
		Level:    r.Level,
		Currency: r.Money,
		Rewards:  r.PhotosUnlocked,
	})
}

// Store reads and writes one snapshot per profile.
type Store interface {
	Load(ctx context.Context, profile string) (Record, error)
	Save(ctx context.Context, profile string, r Record) error
}

// LoadState reads the profile's snapshot, falling back to defaults on any
// read error. The fallback is logged, never returned.
func LoadState(ctx context.Context, store Store, profile string, logger *slog.Logger) progression.State {
	rec, err := store.Load(ctx, profile)
	switch {
	case err == nil:
		return rec.State()
	case errors.Is(err, ErrNotFound):
		logger.Info("no save found, starting fresh", "profile", profile)
	default:
		logger.Warn("save unreadable, starting fresh", "profile", profile, "error", err)
	}
	return progression.Default()
}

// Binder adapts a Store and profile to the battle's Saver contract.
type Binder struct {
	Store   Store
	Profile string
}

// Save writes s under the bound profile.
func (b Binder) Save(ctx context.Context, s progression.State) error {
	return b.Store.Save(ctx, b.Profile, FromState(s))
}
