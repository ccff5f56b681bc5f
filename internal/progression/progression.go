// Package progression derives boss and player stats from the player's level
// and holds the persisted economy state. Every function here is pure.
package progression

import (
	"fmt"
	"math"
)

const (
	// RewardSlots is the number of gallery positions that can be unlocked.
	RewardSlots = 10
	// MilestoneInterval is the level spacing between reward unlocks.
	MilestoneInterval = 50
	// MaxEnergy is the player's energy cap at every level.
	MaxEnergy = 100

	bossBaseHP   = 100
	bossHPGrowth = 1.15
	bossName     = "DEMON"

	// maxBossHP keeps the exponential curve representable once it leaves
	// float64's exact-integer range.
	maxBossHP = 1 << 53
)

// Ranks are the boss titles, one per ten levels. Levels past the end of the
// list keep the last title.
var Ranks = []string{
	"INITIATE",
	"SERVANT",
	"ACOLYTE",
	"DEVOTEE",
	"ZEALOT",
	"WORSHIPPER",
	"ASCENDANT",
}

// State is the per-run progression record that survives restarts.
type State struct {
	Level    int
	Currency int
	Rewards  int // unlocked gallery slots
}

// Default is the state of a brand-new player.
func Default() State { return State{Level: 1} }

// Boss holds the stats of the boss for one level.
type Boss struct {
	Level int
	Title string
	Name  string
	MaxHP int
}

// Player holds the level-derived player caps.
type Player struct {
	MaxHP     int
	MaxEnergy int
}

// ScaleBoss returns the boss for level: MaxHP = floor(100 * 1.15^(level-1)).
func ScaleBoss(level int) Boss {
	level = clampLevel(level)
	hp := math.Floor(bossBaseHP * math.Pow(bossHPGrowth, float64(level-1)))
	maxHP := maxBossHP
	if hp < maxBossHP {
		maxHP = int(hp)
	}
	title := RankTitle(level)
	return Boss{
		Level: level,
		Title: title,
		Name:  fmt.Sprintf("%s %s (LVL %d)", bossName, title, level),
		MaxHP: maxHP,
	}
}

// RankTitle picks the rank for level: Ranks[min(last, level/10)].
func RankTitle(level int) string {
	idx := clampLevel(level) / 10
	if idx > len(Ranks)-1 {
		idx = len(Ranks) - 1
	}
	return Ranks[idx]
}

// ScalePlayer returns the player's caps for level: MaxHP = 100 + level*10.
func ScalePlayer(level int) Player {
	return Player{
		MaxHP:     100 + clampLevel(level)*10,
		MaxEnergy: MaxEnergy,
	}
}

// EnemyDamage is the boss's raw hit for level: floor(10 + level*1.5).
func EnemyDamage(level int) int {
	return 10 + clampLevel(level)*3/2
}

// AttackDamage is the basic attack's damage for level.
func AttackDamage(level int) int {
	return 10 + clampLevel(level)*2
}

// FinisherDamage is the special finisher's uncharged damage for level.
func FinisherDamage(level int) int {
	return 100 + clampLevel(level)*10
}

// RewardsFor returns how many gallery slots level has earned.
func RewardsFor(level int) int {
	n := clampLevel(level) / MilestoneInterval
	if n > RewardSlots {
		n = RewardSlots
	}
	return n
}

// IsMilestone reports whether reaching level unlocks a reward.
func IsMilestone(level int) bool {
	return level > 0 && level%MilestoneInterval == 0
}

// Normalize pulls a loaded state back onto the model's invariants so that
// derived stats are always computed from a valid record.
func Normalize(s State) State {
	s.Level = clampLevel(s.Level)
	if s.Currency < 0 {
		s.Currency = 0
	}
	s.Rewards = RewardsFor(s.Level)
	return s
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}
