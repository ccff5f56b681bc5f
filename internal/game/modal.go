package game

import (
	"github.com/gdamore/tcell/v2"
)

var (
	hdrStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// drawBox clears the screen and draws a centered bordered box with header
// and body lines. It returns the box origin.
func (g *Game) drawBox(header string, lines []string, width int) (x0, y0 int) {
	g.screen.Clear()
	sw, sh := g.screen.Size()
	boxH := len(lines) + 2
	x0 = max(0, (sw-width)/2)
	y0 = max(0, (sh-boxH)/2)

	for col := x0; col < x0+width; col++ {
		g.screen.SetContent(col, y0, '─', nil, borderStyle)
		g.screen.SetContent(col, y0+boxH-1, '─', nil, borderStyle)
	}
	for row := y0; row < y0+boxH; row++ {
		g.screen.SetContent(x0, row, '│', nil, borderStyle)
		g.screen.SetContent(x0+width-1, row, '│', nil, borderStyle)
	}
	g.screen.SetContent(x0, y0, '┌', nil, borderStyle)
	g.screen.SetContent(x0+width-1, y0, '┐', nil, borderStyle)
	g.screen.SetContent(x0, y0+boxH-1, '└', nil, borderStyle)
	g.screen.SetContent(x0+width-1, y0+boxH-1, '┘', nil, borderStyle)

	if header != "" {
		g.putText(x0+(width-len([]rune(header)))/2, y0, header, hdrStyle)
	}
	for i, line := range lines {
		g.putText(x0+2, y0+1+i, line, bodyStyle)
	}
	return x0, y0
}

// runHelp shows a keybinding reference overlay. Any key dismisses it.
func (g *Game) runHelp() {
	lines := []string{
		"── Moves ─────────────────────────────",
		"  1  Attack     5⚡  light hit",
		"  2  Charge    10⚡  triple next finisher",
		"  3  Defend    15⚡  block most of a hit",
		"  4  Finisher  50⚡  heavy critical hit",
		"  5  Recover    free  +40⚡, 1 damage",
		"  ←/→ or h/l, Enter   pick and use",
		"",
		"── Other ─────────────────────────────",
		"  b   Shop (stamina refill)",
		"  r   Redeem a bonus code",
		"  g   Photo gallery",
		"  ?   This help",
		"  q / Esc   Quit",
		"",
		"  [any key to close]",
	}
	for {
		g.drawBox(" Controls ", lines, 44)
		g.screen.Show()
		ev := g.nextEvent()
		switch ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			return
		}
	}
}

// confirmQuit shows a "Really quit? (y/n)" prompt. Returns true if confirmed.
func (g *Game) confirmQuit() bool {
	prompt := " Really quit? (y/n) "
	for {
		g.drawBox("", []string{prompt}, len([]rune(prompt))+4)
		g.screen.Show()
		ev := g.nextEvent()
		switch ev := ev.(type) {
		case nil:
			return true
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Rune() {
			case 'y', 'Y':
				return true
			default:
				return false
			}
		}
	}
}

// runGallery shows the unlocked reward photos until a key is pressed.
func (g *Game) runGallery() {
	for {
		g.renderer.DrawGallery(g.battle.State().Rewards)
		ev := g.nextEvent()
		switch ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			return
		}
	}
}
