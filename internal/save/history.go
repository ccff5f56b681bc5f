package save

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"boss-clicker/internal/battle"

	"github.com/google/uuid"
)

// EncounterLog records one won boss fight.
type EncounterLog struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Profile        string    `json:"profile"`
	LevelCleared   int       `json:"level_cleared"`
	Moves          int       `json:"moves"`
	DamageDealt    int       `json:"damage_dealt"`
	DamageTaken    int       `json:"damage_taken"`
	Defeats        int       `json:"defeats"`
	RewardUnlocked bool      `json:"reward_unlocked"`
}

// History appends encounter logs to encounters.jsonl. It implements
// battle.Observer so it can be attached next to a renderer.
type History struct {
	battle.NopObserver

	Dir     string
	Profile string
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewHistory writes to dir, or to DataDir when dir is empty.
func NewHistory(dir, profile string, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{Dir: dir, Profile: profile, Logger: logger, Now: time.Now}
}

// Victory appends the finished encounter.
func (h *History) Victory(ev battle.VictoryEvent) {
	h.Append(EncounterLog{
		ID:             uuid.NewString(),
		Timestamp:      h.Now().UTC(),
		Profile:        h.Profile,
		LevelCleared:   ev.ClearedLevel,
		Moves:          ev.Stats.Moves,
		DamageDealt:    ev.Stats.DamageDealt,
		DamageTaken:    ev.Stats.DamageTaken,
		Defeats:        ev.Stats.Defeats,
		RewardUnlocked: ev.RewardUnlocked,
	})
}

// Append writes rec as a single JSON line. Errors are logged but never
// interrupt the game.
func (h *History) Append(rec EncounterLog) {
	dir := h.Dir
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			h.Logger.Warn("history: cannot determine data dir", "error", err)
			return
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.Logger.Warn("history: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "encounters.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		h.Logger.Warn("history: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(rec)
	if err != nil {
		h.Logger.Warn("history: cannot marshal JSON", "error", err)
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}
