package game

import (
	"errors"
	"fmt"

	"boss-clicker/internal/battle"

	"github.com/gdamore/tcell/v2"
)

// runShop opens the blocking shop screen. Enter or [a] buys a stamina
// refill; Esc or q closes. The battle keeps running underneath.
func (g *Game) runShop() {
	statusMsg := ""
	for {
		g.drawShop(statusMsg)
		ev := g.nextEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			statusMsg = ""
			switch ev.Key() {
			case tcell.KeyEscape:
				return
			case tcell.KeyEnter:
				statusMsg = g.shopBuy()
			default:
				switch ev.Rune() {
				case 'q', 'Q', 'b', 'B':
					return
				case 'a', 'A':
					statusMsg = g.shopBuy()
				}
			}
		}
	}
}

func (g *Game) shopBuy() string {
	err := g.battle.RequestShopAction()
	switch {
	case err == nil:
		return fmt.Sprintf("Stamina restored. (%d💎 remaining)", g.battle.State().Currency)
	case errors.Is(err, battle.ErrInsufficientFunds):
		return fmt.Sprintf("Not enough gems. (%d💎 needed, you have %d💎)", g.shopPrice(), g.battle.State().Currency)
	default:
		return err.Error()
	}
}

func (g *Game) shopPrice() int { return g.battle.Rules().ShopPrice }

func (g *Game) drawShop(statusMsg string) {
	g.screen.Clear()
	sw, _ := g.screen.Size()

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	yellow := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	highlight := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)

	snap := g.battle.Snapshot()
	g.putText(0, 0, fmt.Sprintf("🛍 SHOP  [You have %d💎]", snap.Currency), yellow)
	hints := "[a/Enter] Buy  [Esc] Close"
	if len([]rune(hints)) < sw {
		g.putText(sw-len([]rune(hints)), 0, hints, gray)
	}
	for x := range sw {
		g.screen.SetContent(x, 1, '─', nil, gray)
	}
	g.putText(0, 2, "  #  Item                 Price   Effect", white)
	for x := range sw {
		g.screen.SetContent(x, 3, '─', nil, gray)
	}
	line := fmt.Sprintf("► [a] %-18s %4d💎  energy %d → %d", "Stamina Refill", g.shopPrice(), snap.Energy, snap.MaxEnergy)
	g.putText(0, 4, line, highlight)
	for x := range sw {
		g.screen.SetContent(x, 5, '─', nil, gray)
	}
	if statusMsg != "" {
		g.putText(0, 6, statusMsg, green)
	}
	g.screen.Show()
}
