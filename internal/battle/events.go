package battle

import (
	"fmt"

	"boss-clicker/internal/progression"
)

// Phase is the battle state machine's current state.
type Phase uint8

const (
	PhasePlayerTurn Phase = iota
	PhaseEnemyTurn
	PhaseVictory
	PhaseDefeatRecovery
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeatRecovery:
		return "defeat_recovery"
	}
	return "unknown"
}

// MarshalText encodes the phase by name for JSON consumers.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for c := PhasePlayerTurn; c <= PhaseDefeatRecovery; c++ {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Snapshot is everything a presentation layer needs to redraw.
// It is comparable, so two snapshots can be checked with ==.
type Snapshot struct {
	Phase       Phase  `json:"phase"`
	Level       int    `json:"level"`
	Currency    int    `json:"currency"`
	Rewards     int    `json:"rewards"`
	RewardSlots int    `json:"rewardSlots"`
	BossName    string `json:"bossName"`
	BossTitle   string `json:"bossTitle"`
	BossHP      int    `json:"bossHP"`
	BossMaxHP   int    `json:"bossMaxHP"`
	PlayerHP    int    `json:"playerHP"`
	PlayerMaxHP int    `json:"playerMaxHP"`
	Energy      int    `json:"energy"`
	MaxEnergy   int    `json:"maxEnergy"`
	Charged     bool   `json:"charged"`
	Shielded    bool   `json:"shielded"`
}

// FloaterStyle tells the presentation layer how to color a floater.
type FloaterStyle uint8

const (
	StyleDamage FloaterStyle = iota
	StyleCrit
	StyleCharge
	StyleEnergy
	StyleShield
	StylePlayerHit
	StyleLevelUp
	StyleReward
	StyleHeal
)

func (s FloaterStyle) String() string {
	switch s {
	case StyleDamage:
		return "damage"
	case StyleCrit:
		return "crit"
	case StyleCharge:
		return "charge"
	case StyleEnergy:
		return "energy"
	case StyleShield:
		return "shield"
	case StylePlayerHit:
		return "player_hit"
	case StyleLevelUp:
		return "level_up"
	case StyleReward:
		return "reward"
	case StyleHeal:
		return "heal"
	}
	return "unknown"
}

// MarshalText encodes the style by name for JSON consumers.
func (s FloaterStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (s *FloaterStyle) UnmarshalText(text []byte) error {
	for c := StyleDamage; c <= StyleHeal; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown floater style %q", text)
}

// Floater is a short-lived combat text. PlayerSide floaters belong next to
// the player's HP bar, the rest next to the boss.
type Floater struct {
	Text       string       `json:"text"`
	Style      FloaterStyle `json:"style"`
	PlayerSide bool         `json:"playerSide"`
}

// EncounterStats are gathered over one boss fight.
type EncounterStats struct {
	Moves       int `json:"moves"`
	DamageDealt int `json:"damageDealt"`
	DamageTaken int `json:"damageTaken"`
	Defeats     int `json:"defeats"`
}

// VictoryEvent describes a won encounter.
type VictoryEvent struct {
	ClearedLevel   int               `json:"clearedLevel"`
	Reward         int               `json:"reward"`
	RewardUnlocked bool              `json:"rewardUnlocked"`
	State          progression.State `json:"-"`
	Stats          EncounterStats    `json:"stats"`
}

// Observer receives battle events. Implementations must not call back into
// the Battle from inside a callback.
type Observer interface {
	StateChanged(Snapshot)
	Floater(Floater)
	TurnLocked(locked bool)
	Victory(VictoryEvent)
	Defeat()
	BossChanged(progression.Boss)
	Rejected(err error)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) StateChanged(Snapshot)        {}
func (NopObserver) Floater(Floater)              {}
func (NopObserver) TurnLocked(bool)              {}
func (NopObserver) Victory(VictoryEvent)         {}
func (NopObserver) Defeat()                      {}
func (NopObserver) BossChanged(progression.Boss) {}
func (NopObserver) Rejected(error)               {}

// Observers fans every event out to each member in order.
type Observers []Observer

func (os Observers) StateChanged(s Snapshot) {
	for _, o := range os {
		o.StateChanged(s)
	}
}

func (os Observers) Floater(f Floater) {
	for _, o := range os {
		o.Floater(f)
	}
}

func (os Observers) TurnLocked(locked bool) {
	for _, o := range os {
		o.TurnLocked(locked)
	}
}

func (os Observers) Victory(ev VictoryEvent) {
	for _, o := range os {
		o.Victory(ev)
	}
}

func (os Observers) Defeat() {
	for _, o := range os {
		o.Defeat()
	}
}

func (os Observers) BossChanged(b progression.Boss) {
	for _, o := range os {
		o.BossChanged(b)
	}
}

func (os Observers) Rejected(err error) {
	for _, o := range os {
		o.Rejected(err)
	}
}
