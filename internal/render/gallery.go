package render

import (
	"fmt"

	"boss-clicker/internal/progression"

	"github.com/gdamore/tcell/v2"
)

// photoGlyphs are shown for unlocked gallery slots, one per milestone.
var photoGlyphs = [progression.RewardSlots]string{
	"🌅", "🌄", "🏞", "🌌", "🌠", "🎆", "🌋", "🗻", "🏝", "👑",
}

// DrawGallery renders the reward gallery: one row per slot, unlocked slots
// showing their photo and the level that earned it.
func (r *Renderer) DrawGallery(unlocked int) {
	if !r.bound() {
		return
	}
	r.screen.Clear()
	r.drawText(0, 0, fmt.Sprintf("📷 GALLERY  %d/%d unlocked", unlocked, progression.RewardSlots), yellow.Bold(true))
	r.drawHLine(1, tcell.ColorGray)
	for i := 0; i < progression.RewardSlots; i++ {
		y := 2 + i
		level := (i + 1) * progression.MilestoneInterval
		if i < unlocked {
			x := 2 + r.putGlyph(2, y, photoGlyphs[i], tcell.StyleDefault)
			r.drawText(x+1, y, fmt.Sprintf("Photo %d  (reached level %d)", i+1, level), white)
			continue
		}
		r.drawText(2, y, fmt.Sprintf("🔒  Locked  (reach level %d)", level), gray)
	}
	r.drawHLine(2+progression.RewardSlots, tcell.ColorGray)
	r.drawText(0, 3+progression.RewardSlots, "[any key to close]", gray)
	r.screen.Show()
}
