// boss-clicker-server serves the game over SSH. Each connection plays its
// own battle, saved under the SSH user name. Build:
//
//	go build -o boss-clicker-server ./cmd/server
//
// Usage:
//
//	./boss-clicker-server [--port 2222] [--key server_host_key] [--save-driver sqlite]
//
// Connect with:
//
//	ssh -t -p 2222 yourname@localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/config"
	"boss-clicker/internal/game"
	"boss-clicker/internal/save"
	internalssh "boss-clicker/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	logger := cfg.NewLogger(os.Stderr)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatal(err)
	}
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	h := &handler{
		store:      store,
		rules:      &rules,
		historyDir: cfg.HistoryDir(),
		logger:     logger,
		active:     make(map[string]bool),
	}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.SSHPort),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any authentication is accepted; the user name only picks the save.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(cfg.HostKey)},
	}

	log.Printf("boss-clicker SSH server listening on :%d (save driver %s)", cfg.SSHPort, cfg.SaveDriver)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no yourname@localhost", cfg.SSHPort)
	log.Fatal(srv.ListenAndServe())
}

// handler runs one game per SSH connection.
type handler struct {
	store      save.Store
	rules      *battle.Rules
	historyDir string
	logger     *slog.Logger

	mu     sync.Mutex
	active map[string]bool
}

// claim marks profile as playing. A second connection for the same profile
// is refused so two battles never race on one save.
func (h *handler) claim(profile string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active[profile] {
		return false
	}
	h.active[profile] = true
	return true
}

func (h *handler) release(profile string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.active, profile)
}

// profileFor maps an SSH user to a save profile.
func profileFor(user string) string {
	if p := internalssh.SanitizeName(user); p != "" {
		return p
	}
	return save.DefaultProfile
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	profile := profileFor(s.User())
	logger := h.logger.With("profile", profile, "remote", s.RemoteAddr().String())

	if !h.claim(profile) {
		fmt.Fprintf(s, "%s is already playing from another connection.\n", profile)
		return
	}
	defer h.release(profile)

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		fmt.Fprintf(s, "%v\n", err)
		logger.Warn("screen setup failed", "error", err)
		return
	}

	g, err := game.New(game.Options{
		Screen:  screen,
		Store:   h.store,
		Profile: profile,
		Rules:   h.rules,
		History: save.NewHistory(h.historyDir, profile, logger),
		Logger:  logger,
	})
	if err != nil {
		screen.Fini()
		logger.Error("game setup failed", "error", err)
		return
	}
	logger.Info("player connected")
	g.Run()
	logger.Info("player disconnected")
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	signer, pemBytes, err := newHostKey()
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		log.Printf("could not save host key: %v", err)
	}
	return signer
}

// newHostKey generates an ed25519 signer and its PEM encoding.
func newHostKey() (gossh.Signer, []byte, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "boss-clicker server")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal key: %w", err)
	}
	return signer, pem.EncodeToMemory(block), nil
}
