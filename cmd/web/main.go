// boss-clicker-web serves the battle as a JSON API for a browser front end.
//
//	go build -o boss-clicker-web ./cmd/web
//	./boss-clicker-web [--addr :8080] [--save-driver sqlite] [--rules rules.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/config"
	"boss-clicker/internal/save"
	"boss-clicker/internal/session"
	"boss-clicker/internal/web"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	logger := cfg.NewLogger(os.Stderr)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	historyDir := cfg.HistoryDir()
	sessions := session.NewManager(session.Options{
		Store:  store,
		Rules:  &rules,
		Logger: logger,
		History: func(profile string) battle.Observer {
			return save.NewHistory(historyDir, profile, logger)
		},
	})
	defer sessions.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           web.NewServer(sessions, cfg.Profile, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("boss-clicker web API listening on %s (save driver %s)", cfg.WebAddr, cfg.SaveDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
