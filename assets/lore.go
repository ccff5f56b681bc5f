// Package assets holds the game's static flavor text.
package assets

// RankLore holds 3 atmospheric snippets per boss rank, indexed like
// progression.Ranks. One is shown each time a new boss appears.
var RankLore = [7][]string{
	{ // INITIATE
		"A junior demon adjusts its horns. They are clearly borrowed.",
		"The imp reads its lines off a scrap of parchment. It has underlined 'menacing'.",
		"Smoke curls from its ears. Mostly from effort.",
	},
	{ // SERVANT
		"It carries a tray of cursed refreshments. Nobody asked for refreshments.",
		"A servant of the pit, and very proud of the uniform.",
		"It bows politely, then cracks its knuckles. The bow was sincere. So are the knuckles.",
	},
	{ // ACOLYTE
		"Masked and chanting, it has memorised every ritual but none of the exits.",
		"The acolyte's robe is singed in a pattern that suggests a lot of practice.",
		"It whispers your name. It got it slightly wrong, which is somehow worse.",
	},
	{ // DEVOTEE
		"Bones rattle with conviction. The devotee believes in this fight more than you do.",
		"Candles flare as it approaches. They were not lit a moment ago.",
		"It has prayed for this moment. Its prayers were unusually specific.",
	},
	{ // ZEALOT
		"Fire pours from its eyes. The floor has given up complaining.",
		"The zealot screams a sermon. Every third word is your weakness.",
		"Heat shimmers around it. Your energy bar looks nervous.",
	},
	{ // WORSHIPPER
		"Scales the size of shields. It worships something older than the pit.",
		"Wings unfold and the room gets smaller. The ceiling was not consulted.",
		"It hums a hymn in a key that makes your teeth ache.",
	},
	{ // ASCENDANT
		"It no longer needs a name. It uses one anyway, as a courtesy.",
		"The light bends toward it. So, briefly, do you.",
		"Ascended, eternal, and still willing to fight you personally.",
	},
}

// Lore returns the snippet for a boss of the given rank and level. The
// choice rotates with level so consecutive bosses read differently.
func Lore(rank, level int) string {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(RankLore) {
		rank = len(RankLore) - 1
	}
	lines := RankLore[rank]
	if len(lines) == 0 {
		return ""
	}
	if level < 0 {
		level = -level
	}
	return lines[level%len(lines)]
}
