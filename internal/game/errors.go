package game

import (
	"errors"
	"fmt"
)

// Guard errors: the operation was refused and nothing changed.
var (
	ErrNotReady        = errors.New("card data is still loading")
	ErrEmptyDeck       = errors.New("deck is empty")
	ErrEmptyHand       = errors.New("hand is empty")
	ErrNoHistory       = errors.New("nothing to undo")
	ErrWrongPhase      = errors.New("not allowed in this phase")
	ErrNoMatch         = errors.New("no matching card in deck")
	ErrInteractionOpen = errors.New("an interaction is waiting for a choice")
	ErrNoInteraction   = errors.New("no interaction is open")
)

// Validation errors for malformed intents.
var (
	ErrBadIndex  = errors.New("index out of range")
	ErrBadAction = errors.New("action not offered")
)

// NoCardOfTypeError reports that the deck holds no card of the requested type.
type NoCardOfTypeError struct {
	Type string
}

func (e *NoCardOfTypeError) Error() string {
	return fmt.Sprintf("no %s in deck", e.Type)
}

// IsGuard reports whether err is a refused-precondition notice rather than a
// malformed request.
func IsGuard(err error) bool {
	var nt *NoCardOfTypeError
	switch {
	case errors.As(err, &nt):
		return true
	case errors.Is(err, ErrNotReady), errors.Is(err, ErrEmptyDeck), errors.Is(err, ErrEmptyHand),
		errors.Is(err, ErrNoHistory), errors.Is(err, ErrWrongPhase), errors.Is(err, ErrNoMatch),
		errors.Is(err, ErrInteractionOpen), errors.Is(err, ErrNoInteraction):
		return true
	}
	return false
}
