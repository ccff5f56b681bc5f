package battle

// Move is a player action submitted during the player's turn.
type Move uint8

const (
	MoveNone Move = iota
	MoveBasicAttack
	MoveCharge
	MoveDefend
	MoveSpecial
	MoveRecover
)

// Moves lists every playable move in menu order.
var Moves = []Move{MoveBasicAttack, MoveCharge, MoveDefend, MoveSpecial, MoveRecover}

// recoverEnergy is the energy restored by MoveRecover.
const recoverEnergy = 40

var moveIDs = map[Move]string{
	MoveBasicAttack: "basicAttack",
	MoveCharge:      "chargeOrEarn",
	MoveDefend:      "defend",
	MoveSpecial:     "specialAction",
	MoveRecover:     "recover",
}

var moveLabels = map[Move]string{
	MoveBasicAttack: "Attack",
	MoveCharge:      "Charge",
	MoveDefend:      "Defend",
	MoveSpecial:     "Finisher",
	MoveRecover:     "Recover",
}

// String returns the move's wire ID.
func (m Move) String() string {
	if id, ok := moveIDs[m]; ok {
		return id
	}
	return "none"
}

// Label returns the short menu label.
func (m Move) Label() string { return moveLabels[m] }

// Cost returns the energy the move spends.
func (m Move) Cost() int {
	switch m {
	case MoveBasicAttack:
		return 5
	case MoveCharge:
		return 10
	case MoveDefend:
		return 15
	case MoveSpecial:
		return 50
	}
	return 0
}

// ParseMove maps a wire ID such as "basicAttack" to a Move.
func ParseMove(id string) (Move, bool) {
	for m, s := range moveIDs {
		if s == id {
			return m, true
		}
	}
	return MoveNone, false
}
