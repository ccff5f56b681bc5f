package render

import (
	"fmt"
	"strings"

	"boss-clicker/internal/battle"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const barWidth = 30

var (
	white  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gray   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	yellow = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim    = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
)

// Draw paints the full battle screen. cursor is the highlighted move index
// in battle.Moves.
func (r *Renderer) Draw(cursor int) {
	if !r.bound() {
		return
	}
	r.Prune()
	r.screen.Clear()
	_, sh := r.screen.Size()
	s := r.snap

	// Header.
	r.drawText(0, 0, "😈 BOSS CLICKER", yellow.Bold(true))
	status := r.printer.Sprintf("LVL %d   💎 %d   📷 %d/%d", s.Level, s.Currency, s.Rewards, s.RewardSlots)
	r.drawRight(0, status, white)
	r.drawHLine(1, tcell.ColorGray)

	// Boss panel.
	theme := themeFor(s.Level / 10)
	x := r.putGlyph(1, 3, theme.Glyph, tcell.StyleDefault)
	r.drawText(x+2, 3, s.BossName, tcell.StyleDefault.Foreground(theme.Accent).Bold(true))
	r.drawBar(1, 4, "HP ", s.BossHP, s.BossMaxHP, tcell.ColorRed)
	r.drawFloaters(1, 5, false)

	// Player panel.
	tags := "YOU"
	if s.Charged {
		tags += "  [CHARGED]"
	}
	if s.Shielded {
		tags += "  [SHIELD]"
	}
	r.drawText(1, 7, tags, white.Bold(true))
	r.drawBar(1, 8, "HP ", s.PlayerHP, s.PlayerMaxHP, tcell.ColorGreen)
	r.drawBar(1, 9, "EN ", s.Energy, s.MaxEnergy, tcell.ColorAqua)
	r.drawFloaters(1, 10, true)

	r.drawHLine(12, tcell.ColorGray)
	r.drawMoves(13, cursor)
	r.drawText(1, 14, "[b] Shop  [r] Redeem  [g] Gallery  [?] Help  [q] Quit", gray)
	r.drawHLine(15, tcell.ColorGray)

	// Message log fills the rest.
	room := sh - 16
	if room > 0 {
		start := max(0, len(r.messages)-room)
		for i, msg := range r.messages[start:] {
			r.drawText(1, 16+i, msg, dim)
		}
	}
	r.screen.Show()
}

// drawMoves renders the move menu. Moves the player cannot afford, or any
// move while input is locked, are dimmed.
func (r *Renderer) drawMoves(y, cursor int) {
	if r.locked {
		switch r.snap.Phase {
		case battle.PhaseDefeatRecovery:
			r.drawText(1, y, "You are down... recovering", tcell.StyleDefault.Foreground(tcell.ColorRed))
		default:
			r.drawText(1, y, "The demon is acting...", tcell.StyleDefault.Foreground(tcell.ColorOrange))
		}
		return
	}
	x := 1
	for i, m := range battle.Moves {
		label := fmt.Sprintf("[%d] %s", i+1, m.Label())
		if c := m.Cost(); c > 0 {
			label += fmt.Sprintf(" %d⚡", c)
		}
		style := white
		if r.snap.Energy < m.Cost() {
			style = gray
		}
		if i == cursor {
			style = style.Reverse(true)
		}
		x += r.drawText(x, y, label, style) + 2
	}
}

// drawBar renders "label [████░░░░] cur/max".
func (r *Renderer) drawBar(x, y int, label string, cur, maxV int, color tcell.Color) {
	x += r.drawText(x, y, label, white)
	x += r.drawText(x, y, Bar(cur, maxV, barWidth), tcell.StyleDefault.Foreground(color))
	r.drawText(x+1, y, r.printer.Sprintf("%d/%d", cur, maxV), white)
}

// drawFloaters lists the live floaters for one side, newest last.
func (r *Renderer) drawFloaters(x, y int, playerSide bool) {
	for _, f := range r.floaters {
		if f.PlayerSide != playerSide {
			continue
		}
		x += r.drawText(x, y, f.Text, tcell.StyleDefault.Foreground(floaterColor(f.Style)).Bold(true)) + 2
	}
}

func (r *Renderer) drawRight(y int, text string, style tcell.Style) {
	sw, _ := r.screen.Size()
	r.drawText(max(0, sw-runewidth.StringWidth(text)-1), y, text, style)
}

// Bar renders a fixed-width fill gauge.
func Bar(cur, maxV, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if maxV > 0 && cur > 0 {
		filled = int(int64(min(cur, maxV)) * int64(width) / int64(maxV))
		if filled == 0 {
			filled = 1
		}
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
