package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"boss-clicker/internal/save"

	xssh "golang.org/x/crypto/ssh"
)

func TestProfileFor(t *testing.T) {
	cases := []struct {
		name string
		user string
		want string
	}{
		{"plain user", "alice", "alice"},
		{"long user truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control only falls back", "\x00\x1b", "local"},
		{"empty falls back", "", "local"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := profileFor(tc.user); got != tc.want {
				t.Errorf("profileFor(%q) = %q, want %q", tc.user, got, tc.want)
			}
		})
	}
}

func TestClaimIsExclusive(t *testing.T) {
	h := &handler{active: make(map[string]bool)}
	if !h.claim("alice") {
		t.Fatal("first claim refused")
	}
	if h.claim("alice") {
		t.Error("second claim for the same profile accepted")
	}
	if !h.claim("bob") {
		t.Error("other profile refused")
	}
	h.release("alice")
	if !h.claim("alice") {
		t.Error("claim after release refused")
	}
}

func TestLookalikeUsersGetSeparateSaves(t *testing.T) {
	h := &handler{active: make(map[string]bool)}
	fs := &save.FileStore{Dir: t.TempDir()}
	ctx := context.Background()

	users := []string{"ab", "a.b", "a b"}
	for i, u := range users {
		p := profileFor(u)
		if !h.claim(p) {
			t.Fatalf("claim for %q refused", u)
		}
		if err := fs.Save(ctx, p, save.Record{Level: i + 1}); err != nil {
			t.Fatal(err)
		}
	}
	for i, u := range users {
		rec, err := fs.Load(ctx, profileFor(u))
		if err != nil {
			t.Fatal(err)
		}
		if rec.Level != i+1 {
			t.Errorf("user %q loaded level %d, want %d", u, rec.Level, i+1)
		}
	}
}

func TestHostKeyPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	first := loadOrCreateHostKey(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("host key not written: %v", err)
	}
	if _, err := xssh.ParsePrivateKey(data); err != nil {
		t.Fatalf("written key does not parse: %v", err)
	}

	second := loadOrCreateHostKey(path)
	if string(first.PublicKey().Marshal()) != string(second.PublicKey().Marshal()) {
		t.Error("reloaded key differs from the generated one")
	}
}
