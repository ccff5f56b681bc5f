package game

import (
	"errors"

	"boss-clicker/internal/battle"

	"github.com/gdamore/tcell/v2"
)

const maxCodeLen = 24

// runRedeem prompts for a bonus code. Enter submits, Esc cancels.
func (g *Game) runRedeem() {
	var code []rune
	status := ""
	for {
		x0, y0 := g.drawBox(" Redeem Code ", []string{
			"Enter a bonus code:",
			"",
			"",
			status,
		}, 40)
		g.putText(x0+2, y0+3, "> "+string(code)+"_", tcell.StyleDefault.Foreground(tcell.ColorWhite))
		g.screen.Show()

		ev := g.nextEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape:
				return
			case tcell.KeyEnter:
				msg, done := g.redeem(string(code))
				if done {
					g.renderer.AddMessage(msg)
					return
				}
				status = msg
				code = code[:0]
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(code) > 0 {
					code = code[:len(code)-1]
				}
			case tcell.KeyRune:
				if len(code) < maxCodeLen {
					code = append(code, ev.Rune())
				}
			}
		}
	}
}

// redeem submits code and returns a status line and whether the prompt
// should close.
func (g *Game) redeem(code string) (string, bool) {
	err := g.battle.RequestRedeem(code)
	switch {
	case err == nil:
		return "Code accepted! Fully healed.", true
	case errors.Is(err, battle.ErrCodeRedeemed):
		return "That code was already used.", false
	case errors.Is(err, battle.ErrInvalidCode):
		return "Unknown code.", false
	default:
		return err.Error(), true
	}
}
