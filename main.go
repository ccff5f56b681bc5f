package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"boss-clicker/internal/config"
	"boss-clicker/internal/game"
	"boss-clicker/internal/save"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	dataDir, err := save.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "boss-clicker.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	g, err := game.New(game.Options{
		Store:   store,
		Profile: cfg.Profile,
		Rules:   &rules,
		History: save.NewHistory(cfg.HistoryDir(), cfg.Profile, logger),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	g.Run()
	return nil
}
