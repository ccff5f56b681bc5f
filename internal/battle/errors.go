package battle

import "errors"

// ErrRejected matches every command rejection via errors.Is.
var ErrRejected = errors.New("rejected")

// Rejection is a non-fatal refusal of a command. Rejected commands never
// change battle state.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// Is lets errors.Is(err, ErrRejected) match any Rejection.
func (r *Rejection) Is(target error) bool { return target == ErrRejected }

var (
	ErrNotYourTurn        error = &Rejection{Reason: "not your turn"}
	ErrInsufficientEnergy error = &Rejection{Reason: "insufficient energy"}
	ErrUnknownMove        error = &Rejection{Reason: "unknown move"}
	ErrInsufficientFunds  error = &Rejection{Reason: "insufficient funds"}
	ErrInvalidCode        error = &Rejection{Reason: "invalid code"}
	ErrCodeRedeemed       error = &Rejection{Reason: "code already redeemed"}
	ErrClosed             error = &Rejection{Reason: "battle closed"}
)
