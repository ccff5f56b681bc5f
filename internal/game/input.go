package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMove1
	ActionMove2
	ActionMove3
	ActionMove4
	ActionMove5
	ActionLeft
	ActionRight
	ActionConfirm
	ActionShop
	ActionRedeem
	ActionGallery
	ActionHelp
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyEscape:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	// Rune keys.
	switch ev.Rune() {
	case '1':
		return ActionMove1
	case '2':
		return ActionMove2
	case '3':
		return ActionMove3
	case '4':
		return ActionMove4
	case '5':
		return ActionMove5
	case 'h', 'H':
		return ActionLeft
	case 'l', 'L':
		return ActionRight
	case ' ':
		return ActionConfirm
	case 'b', 'B', 's', 'S':
		return ActionShop
	case 'r', 'R', '/':
		return ActionRedeem
	case 'g', 'G':
		return ActionGallery
	case '?':
		return ActionHelp
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
