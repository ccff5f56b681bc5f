// Package sqlite provides a SQLite-backed save store holding one progress
// row per profile, for frontends that serve many players.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"boss-clicker/internal/save"
	"boss-clicker/internal/save/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store persists progress rows in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the profile's snapshot or save.ErrNotFound.
func (s *Store) Load(ctx context.Context, profile string) (save.Record, error) {
	if err := ctx.Err(); err != nil {
		return save.Record{}, err
	}
	var rec save.Record
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT level, money, photos_unlocked FROM progress WHERE profile = ?`,
		profile,
	).Scan(&rec.Level, &rec.Money, &rec.PhotosUnlocked)
	if errors.Is(err, sql.ErrNoRows) {
		return save.Record{}, save.ErrNotFound
	}
	if err != nil {
		return save.Record{}, fmt.Errorf("load progress: %w", err)
	}
	return rec, nil
}

// Save upserts the profile's snapshot.
func (s *Store) Save(ctx context.Context, profile string, rec save.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(profile) == "" {
		return fmt.Errorf("profile is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO progress (profile, level, money, photos_unlocked, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(profile) DO UPDATE SET
		   level = excluded.level,
		   money = excluded.money,
		   photos_unlocked = excluded.photos_unlocked,
		   updated_at = excluded.updated_at`,
		profile, rec.Level, rec.Money, rec.PhotosUnlocked, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
