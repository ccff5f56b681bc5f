package progression

import (
	"math"
	"testing"
)

func TestScaleBossMaxHP(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 114},
		{11, 404},
		{0, 100},  // clamped to level 1
		{-5, 100}, // clamped to level 1
	}
	for _, tc := range cases {
		if got := ScaleBoss(tc.level).MaxHP; got != tc.want {
			t.Errorf("ScaleBoss(%d).MaxHP = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestScaleBossMatchesFormula(t *testing.T) {
	for level := 1; level <= 120; level++ {
		want := int(math.Floor(100 * math.Pow(1.15, float64(level-1))))
		if got := ScaleBoss(level).MaxHP; got != want {
			t.Fatalf("level %d: MaxHP = %d, want %d", level, got, want)
		}
	}
}

func TestScaleBossHugeLevelStaysPositive(t *testing.T) {
	b := ScaleBoss(10000)
	if b.MaxHP <= 0 {
		t.Fatalf("MaxHP overflowed: %d", b.MaxHP)
	}
	if b.MaxHP < ScaleBoss(300).MaxHP {
		t.Error("MaxHP must not decrease with level")
	}
}

func TestRankTitle(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "INITIATE"},
		{9, "INITIATE"},
		{10, "SERVANT"},
		{25, "ACOLYTE"},
		{69, "ASCENDANT"},
		{500, "ASCENDANT"},
	}
	for _, tc := range cases {
		if got := RankTitle(tc.level); got != tc.want {
			t.Errorf("RankTitle(%d) = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestBossName(t *testing.T) {
	if got := ScaleBoss(12).Name; got != "DEMON SERVANT (LVL 12)" {
		t.Errorf("Name = %q", got)
	}
}

func TestScalePlayer(t *testing.T) {
	p := ScalePlayer(1)
	if p.MaxHP != 110 || p.MaxEnergy != 100 {
		t.Errorf("ScalePlayer(1) = %+v", p)
	}
	if got := ScalePlayer(7).MaxHP; got != 170 {
		t.Errorf("ScalePlayer(7).MaxHP = %d, want 170", got)
	}
}

func TestEnemyDamage(t *testing.T) {
	if got := EnemyDamage(1); got != 11 {
		t.Errorf("EnemyDamage(1) = %d, want 11", got)
	}
	if got := EnemyDamage(3); got != 14 {
		t.Errorf("EnemyDamage(3) = %d, want 14", got)
	}
	prev := EnemyDamage(1)
	for level := 2; level <= 500; level++ {
		d := EnemyDamage(level)
		want := int(math.Floor(10 + float64(level)*1.5))
		if d != want {
			t.Fatalf("EnemyDamage(%d) = %d, want %d", level, d, want)
		}
		if d < prev {
			t.Fatalf("EnemyDamage decreased at level %d: %d < %d", level, d, prev)
		}
		prev = d
	}
}

func TestMonotonicScaling(t *testing.T) {
	for level := 1; level < 300; level++ {
		if ScaleBoss(level+1).MaxHP < ScaleBoss(level).MaxHP {
			t.Fatalf("boss HP decreased at level %d", level+1)
		}
		if ScalePlayer(level+1).MaxHP < ScalePlayer(level).MaxHP {
			t.Fatalf("player HP decreased at level %d", level+1)
		}
		if AttackDamage(level+1) < AttackDamage(level) || FinisherDamage(level+1) < FinisherDamage(level) {
			t.Fatalf("move damage decreased at level %d", level+1)
		}
	}
}

func TestRewardsFor(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{1, 0},
		{49, 0},
		{50, 1},
		{51, 1},
		{100, 2},
		{500, 10},
		{2000, 10},
	}
	for _, tc := range cases {
		if got := RewardsFor(tc.level); got != tc.want {
			t.Errorf("RewardsFor(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestIsMilestone(t *testing.T) {
	if !IsMilestone(50) || !IsMilestone(100) {
		t.Error("multiples of 50 are milestones")
	}
	if IsMilestone(0) || IsMilestone(49) || IsMilestone(51) {
		t.Error("non-multiples are not milestones")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   State
		want State
	}{
		{"zero value", State{}, State{Level: 1}},
		{"negative currency", State{Level: 3, Currency: -10}, State{Level: 3}},
		{"rewards recomputed", State{Level: 120, Currency: 5, Rewards: 9}, State{Level: 120, Currency: 5, Rewards: 2}},
		{"already valid", State{Level: 50, Currency: 7, Rewards: 1}, State{Level: 50, Currency: 7, Rewards: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
