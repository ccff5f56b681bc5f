package assets

import "testing"

func TestRankLoreHasThreeLinesPerRank(t *testing.T) {
	for i, lines := range RankLore {
		if len(lines) != 3 {
			t.Errorf("rank %d has %d lines, want 3", i, len(lines))
		}
	}
}

func TestLoreRotatesAndClamps(t *testing.T) {
	if Lore(0, 1) == Lore(0, 2) {
		t.Error("consecutive levels should read differently")
	}
	if Lore(0, 1) != Lore(0, 4) {
		t.Error("lore should cycle every three levels")
	}
	if Lore(99, 0) != RankLore[len(RankLore)-1][0] {
		t.Error("rank past the table should use the last rank")
	}
	if Lore(-3, 0) != RankLore[0][0] {
		t.Error("negative rank should use the first rank")
	}
}
