// Package render draws the battle onto a tcell screen. A Renderer is a
// battle.Observer: it records what the battle announces and paints it on
// the next Draw.
package render

import (
	"errors"
	"log/slog"
	"time"

	"boss-clicker/assets"
	"boss-clicker/internal/battle"
	"boss-clicker/internal/progression"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FloaterTTL is how long combat text stays on screen.
const FloaterTTL = 1500 * time.Millisecond

const maxMessages = 50

type liveFloater struct {
	battle.Floater
	expires time.Time
}

// Renderer draws the battle HUD.
type Renderer struct {
	screen  tcell.Screen
	logger  *slog.Logger
	printer *message.Printer
	now     func() time.Time

	snap     battle.Snapshot
	boss     progression.Boss
	locked   bool
	floaters []liveFloater
	messages []string
	warned   bool
}

// NewRenderer creates a Renderer for screen. A nil screen is allowed; Draw
// then logs once and does nothing.
func NewRenderer(screen tcell.Screen, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		screen:  screen,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// ─── battle.Observer ────────────────────────────────────────────────────────

func (r *Renderer) StateChanged(s battle.Snapshot) { r.snap = s }

func (r *Renderer) Floater(f battle.Floater) {
	r.floaters = append(r.floaters, liveFloater{Floater: f, expires: r.now().Add(FloaterTTL)})
}

func (r *Renderer) TurnLocked(locked bool) { r.locked = locked }

func (r *Renderer) Victory(ev battle.VictoryEvent) {
	msg := r.printer.Sprintf("Level %d cleared in %d moves. +%d gems.", ev.ClearedLevel, ev.Stats.Moves, ev.Reward)
	if ev.RewardUnlocked {
		msg += " A new photo joins the gallery!"
	}
	r.AddMessage(msg)
}

func (r *Renderer) Defeat() {
	r.AddMessage("You fall... the demon lets you crawl back up.")
}

func (r *Renderer) BossChanged(b progression.Boss) {
	r.boss = b
	r.AddMessage("A new foe appears: " + b.Name)
	if lore := assets.Lore(b.Level/10, b.Level); lore != "" {
		r.AddMessage(lore)
	}
}

func (r *Renderer) Rejected(err error) {
	if errors.Is(err, battle.ErrNotYourTurn) {
		r.AddMessage("Wait for the demon to act.")
		return
	}
	r.AddMessage("Can't do that: " + err.Error())
}

// ─── state ──────────────────────────────────────────────────────────────────

// AddMessage appends a line to the message log.
func (r *Renderer) AddMessage(msg string) {
	r.messages = append(r.messages, msg)
	if len(r.messages) > maxMessages {
		r.messages = r.messages[len(r.messages)-maxMessages:]
	}
}

// Messages returns the message log, oldest first.
func (r *Renderer) Messages() []string { return r.messages }

// Snapshot returns the last state the battle announced.
func (r *Renderer) Snapshot() battle.Snapshot { return r.snap }

// Locked reports whether input is currently locked by the enemy's turn.
func (r *Renderer) Locked() bool { return r.locked }

// Prune drops expired floaters and reports whether any remain.
func (r *Renderer) Prune() bool {
	now := r.now()
	live := r.floaters[:0]
	for _, f := range r.floaters {
		if now.Before(f.expires) {
			live = append(live, f)
		}
	}
	r.floaters = live
	return len(r.floaters) > 0
}

// ─── drawing helpers ────────────────────────────────────────────────────────

// bound reports whether there is a screen to draw on, logging the first
// time there is not.
func (r *Renderer) bound() bool {
	if r.screen != nil {
		return true
	}
	if !r.warned {
		r.warned = true
		r.logger.Warn("render: no screen bound, skipping draw")
	}
	return false
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y) and returns its width in columns.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return 0
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	w := runewidth.StringWidth(glyph)
	if w == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
	return max(w, 1)
}

// drawText writes text from (x, y), advancing by each rune's display width
// and stopping at the right edge.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	sw, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > sw {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col - x
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// centerText draws text horizontally centered on row y.
func (r *Renderer) centerText(y int, text string, style tcell.Style) {
	sw, _ := r.screen.Size()
	x := (sw - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, text, style)
}
