package save

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON file per profile inside Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir, or at DataDir when dir is
// empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = d
	}
	return &FileStore{Dir: dir}, nil
}

// Load reads the profile's snapshot.
func (fs *FileStore) Load(ctx context.Context, profile string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(fs.path(profile))
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("read save: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}

// Save writes the snapshot through a temp file and rename so a crash never
// leaves a half-written save behind.
func (fs *FileStore) Save(ctx context.Context, profile string, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	path := fs.path(profile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (fs *FileStore) path(profile string) string {
	return filepath.Join(fs.Dir, "save-"+profileFileName(profile)+".json")
}

// profileFileName maps each profile to its own file name. Names made only
// of lowercase ASCII letters, digits, '-' and '_' are used as they are, so
// case-insensitive filesystems cannot merge two profiles. Anything else
// is hex-encoded behind an "x." prefix, which no plain name can
// produce, so distinct profiles never share a file and none escapes Dir.
func profileFileName(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	if strings.IndexFunc(profile, unsafeFileRune) < 0 {
		return profile
	}
	return "x." + hex.EncodeToString([]byte(profile))
}

func unsafeFileRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		return false
	}
	return true
}

// DataDir returns the directory where saves and history are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/boss-clicker,
// defaulting to ~/.local/share/boss-clicker.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "boss-clicker"), nil
}
