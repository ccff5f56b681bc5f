package render

import (
	"boss-clicker/internal/battle"

	"github.com/gdamore/tcell/v2"
)

// BossTheme holds the portrait glyph and accent color for one boss rank.
// Emoji are drawn by the terminal in their own colors, so each rank gets a
// distinct glyph instead of a tinted one.
type BossTheme struct {
	Glyph  string
	Accent tcell.Color
}

// BossThemes is indexed like progression.Ranks.
var BossThemes = [...]BossTheme{
	// INITIATE: lesser imp
	{Glyph: "👿", Accent: tcell.ColorIndianRed},
	// SERVANT: horned brute
	{Glyph: "👹", Accent: tcell.ColorOrangeRed},
	// ACOLYTE: masked cultist
	{Glyph: "👺", Accent: tcell.ColorCrimson},
	// DEVOTEE: bone priest
	{Glyph: "💀", Accent: tcell.ColorSilver},
	// ZEALOT: fire-bearer
	{Glyph: "🔥", Accent: tcell.ColorOrange},
	// WORSHIPPER: dragon form
	{Glyph: "🐉", Accent: tcell.ColorMediumPurple},
	// ASCENDANT: the final shape
	{Glyph: "🌑", Accent: tcell.NewRGBColor(180, 100, 255)},
}

// themeFor returns the theme for a rank index, clamped to the table.
func themeFor(rank int) BossTheme {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(BossThemes) {
		rank = len(BossThemes) - 1
	}
	return BossThemes[rank]
}

// floaterColor maps a floater style onto a foreground color.
func floaterColor(s battle.FloaterStyle) tcell.Color {
	switch s {
	case battle.StyleCrit:
		return tcell.ColorYellow
	case battle.StyleCharge:
		return tcell.ColorFuchsia
	case battle.StyleEnergy:
		return tcell.ColorAqua
	case battle.StyleShield:
		return tcell.ColorSteelBlue
	case battle.StylePlayerHit:
		return tcell.ColorRed
	case battle.StyleLevelUp:
		return tcell.ColorGreen
	case battle.StyleReward:
		return tcell.ColorGold
	case battle.StyleHeal:
		return tcell.ColorLightGreen
	}
	return tcell.ColorWhite
}
