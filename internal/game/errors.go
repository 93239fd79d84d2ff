package game

import "errors"

// User errors: the caller supplied something invalid. These are rejected
// without mutating hand state, so the caller may retry safely.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidAction     = errors.New("invalid action")
	ErrBadAmount         = errors.New("bad amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrGameOver          = errors.New("game over")
)

// ErrInternalConsistency marks an invariant breach (chip conservation, pot
// identity, turn ordering). It indicates a bug: the hand is aborted and no
// silent repair is attempted.
var ErrInternalConsistency = errors.New("internal consistency violation")
