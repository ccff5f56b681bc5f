package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/progression"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestDataDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir returned error: %v", err)
	}
	if want := filepath.Join(tmp, "boss-clicker"); dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestDataDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := DataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", "boss-clicker")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := &FileStore{Dir: t.TempDir()}
	ctx := context.Background()
	want := Record{Level: 12, Money: 340, PhotosUnlocked: 0}
	if err := fs.Save(ctx, "local", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := fs.Load(ctx, "local")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFileStoreWireFormat(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}
	if err := fs.Save(context.Background(), "local", Record{Level: 3, Money: 7, PhotosUnlocked: 0}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "save-local.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"level":3,"money":7,"photosUnlocked":0}` {
		t.Errorf("file = %s", got)
	}
}

func TestFileStoreMissing(t *testing.T) {
	fs := &FileStore{Dir: t.TempDir()}
	if _, err := fs.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "save-local.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := &FileStore{Dir: dir}
	if _, err := fs.Load(context.Background(), "local"); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestProfileFileName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"alice", "alice"},
		{"../../etc/passwd", "x.2e2e2f2e2e2f6574632f706173737764"},
		{"bob_the-2nd", "bob_the-2nd"},
		{"", "local"},
		{"///", "x.2f2f2f"},
		{"a.b", "x.612e62"},
		{"Alice", "x.416c696365"},
	}
	for _, tc := range cases {
		if got := profileFileName(tc.in); got != tc.want {
			t.Errorf("profileFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileStoreKeepsSimilarProfilesApart(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}
	ctx := context.Background()

	profiles := []string{"ab", "a.b", "a b", "AB", "x.612e62"}
	for i, p := range profiles {
		if err := fs.Save(ctx, p, Record{Level: i + 1, Money: 10 * i}); err != nil {
			t.Fatalf("Save(%q): %v", p, err)
		}
	}
	for i, p := range profiles {
		rec, err := fs.Load(ctx, p)
		if err != nil {
			t.Fatalf("Load(%q): %v", p, err)
		}
		if rec.Level != i+1 || rec.Money != 10*i {
			t.Errorf("Load(%q) = %+v, want level %d money %d", p, rec, i+1, 10*i)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(profiles) {
		t.Errorf("%d save files, want %d", len(entries), len(profiles))
	}
}

func TestLoadStateFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}
	ctx := context.Background()

	if got := LoadState(ctx, fs, "local", discardLogger()); got != progression.Default() {
		t.Errorf("missing save: got %+v", got)
	}

	_ = os.WriteFile(filepath.Join(dir, "save-local.json"), []byte("garbage"), 0o644)
	if got := LoadState(ctx, fs, "local", discardLogger()); got != progression.Default() {
		t.Errorf("corrupt save: got %+v", got)
	}
}

func TestLoadStateNormalizes(t *testing.T) {
	fs := &FileStore{Dir: t.TempDir()}
	ctx := context.Background()
	_ = fs.Save(ctx, "local", Record{Level: 120, Money: -5, PhotosUnlocked: 9})
	got := LoadState(ctx, fs, "local", discardLogger())
	want := progression.State{Level: 120, Currency: 0, Rewards: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// Reloading a save must rebuild exactly the same boss and player.
func TestSaveReloadReproducesDerivedState(t *testing.T) {
	fs := &FileStore{Dir: t.TempDir()}
	ctx := context.Background()
	binder := Binder{Store: fs, Profile: "local"}

	original := battle.New(battle.Config{
		State:  progression.State{Level: 73, Currency: 410, Rewards: 1},
		Logger: discardLogger(),
	})
	if err := binder.Save(ctx, original.State()); err != nil {
		t.Fatal(err)
	}

	reloaded := battle.New(battle.Config{
		State:  LoadState(ctx, fs, "local", discardLogger()),
		Logger: discardLogger(),
	})
	if original.Snapshot() != reloaded.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", original.Snapshot(), reloaded.Snapshot())
	}
	if original.Boss() != reloaded.Boss() {
		t.Errorf("boss differs: %+v vs %+v", original.Boss(), reloaded.Boss())
	}
}

func TestHistoryAppendsVictories(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir, "local", discardLogger())

	for i := range 3 {
		h.Victory(battle.VictoryEvent{
			ClearedLevel: i + 1,
			Stats:        battle.EncounterStats{Moves: 4, DamageDealt: 100},
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "encounters.jsonl"))
	if err != nil {
		t.Fatalf("encounters.jsonl not found: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], `"level_cleared":3`) {
		t.Errorf("last line missing level: %s", lines[2])
	}
	if !strings.Contains(lines[0], `"profile":"local"`) {
		t.Errorf("line missing profile: %s", lines[0])
	}
}

func TestHistoryUsesDataDirWhenUnset(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	h := NewHistory("", "local", discardLogger())
	h.Append(EncounterLog{ID: "x", LevelCleared: 1})
	if _, err := os.Stat(filepath.Join(tmp, "boss-clicker", "encounters.jsonl")); err != nil {
		t.Fatalf("history not written under data dir: %v", err)
	}
}

func TestHistoryNilLoggerSurvivesWriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewHistory(blocker, "local", nil)
	if h.Logger == nil {
		t.Fatal("nil logger not replaced")
	}
	h.Append(EncounterLog{LevelCleared: 1})
	if _, err := os.Stat(filepath.Join(blocker, "encounters.jsonl")); err == nil {
		t.Error("history written under a regular file")
	}
}
