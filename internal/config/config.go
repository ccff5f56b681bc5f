// Package config loads runtime settings from BOSS_CLICKER_* environment
// variables and command-line flags, and the optional YAML rules file.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"boss-clicker/internal/battle"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Save drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config holds settings shared by every frontend.
type Config struct {
	SaveDriver string `env:"BOSS_CLICKER_SAVE_DRIVER" envDefault:"file"`
	SavePath   string `env:"BOSS_CLICKER_SAVE_PATH"`
	Profile    string `env:"BOSS_CLICKER_PROFILE"     envDefault:"local"`
	RulesPath  string `env:"BOSS_CLICKER_RULES"`
	LogLevel   string `env:"BOSS_CLICKER_LOG_LEVEL"   envDefault:"info"`
	SSHPort    int    `env:"BOSS_CLICKER_SSH_PORT"    envDefault:"2222"`
	HostKey    string `env:"BOSS_CLICKER_HOST_KEY"    envDefault:"server_host_key"`
	WebAddr    string `env:"BOSS_CLICKER_WEB_ADDR"    envDefault:":8080"`
}

// Parse reads the environment, then lets flags in args override it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.SaveDriver, "save-driver", cfg.SaveDriver, "save backend: file or sqlite")
	fs.StringVar(&cfg.SavePath, "save-path", cfg.SavePath, "save directory (file) or database path (sqlite)")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "save profile name")
	fs.StringVar(&cfg.RulesPath, "rules", cfg.RulesPath, "path to a YAML rules file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.IntVar(&cfg.SSHPort, "port", cfg.SSHPort, "SSH server port")
	fs.StringVar(&cfg.HostKey, "key", cfg.HostKey, "path to the PEM-encoded host key (auto-generated if absent)")
	fs.StringVar(&cfg.WebAddr, "addr", cfg.WebAddr, "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged fields.
func (c Config) Validate() error {
	switch c.SaveDriver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("unknown save driver %q", c.SaveDriver)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.SSHPort <= 0 || c.SSHPort > 65535 {
		return fmt.Errorf("ssh port out of range: %d", c.SSHPort)
	}
	return nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// NewLogger builds a text logger on w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// LoadRules reads a YAML rules file on top of battle.DefaultRules. An empty
// path returns the defaults. Keys absent from the file keep their default.
func LoadRules(path string) (battle.Rules, error) {
	rules := battle.DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return battle.Rules{}, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return battle.Rules{}, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return battle.Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}
