package config

import (
	"fmt"
	"os"
	"path/filepath"

	"boss-clicker/internal/save"
	"boss-clicker/internal/save/sqlite"
)

// nopClose is returned for stores that hold no resources.
func nopClose() error { return nil }

// OpenStore opens the configured save backend. The returned close func must
// be called on shutdown.
func (c Config) OpenStore() (save.Store, func() error, error) {
	switch c.SaveDriver {
	case DriverSQLite:
		path := c.SavePath
		if path == "" {
			dir, err := save.DataDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve data dir: %w", err)
			}
			path = filepath.Join(dir, "boss-clicker.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create save dir: %w", err)
		}
		st, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case DriverFile, "":
		st, err := save.NewFileStore(c.SavePath)
		if err != nil {
			return nil, nil, err
		}
		return st, nopClose, nil
	}
	return nil, nil, fmt.Errorf("unknown save driver %q", c.SaveDriver)
}

// HistoryDir is where the encounter log lives: next to file saves, or in
// the data dir for sqlite.
func (c Config) HistoryDir() string {
	if c.SaveDriver == DriverFile && c.SavePath != "" {
		return c.SavePath
	}
	return ""
}
