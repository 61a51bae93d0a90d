package game

import (
	"fmt"

	"github.com/peterkuimelis/mullsim/internal/card"
)

const (
	FirstHandSize  = 3
	SecondHandSize = 4
	MaxBottomLook  = 3 // cards examined by Dredge and Fracking
	DiscoverCount  = 3
	MaxMana        = 10

	// firstUniqueID is where stable ids start after the opening deal, which
	// uses 0..hand size-1.
	firstUniqueID = 1000
)

// ManaGainIDs are the cards that grant one extra mana this turn when played.
// Only these ids are recognized; there is no effect system behind them.
var ManaGainIDs = map[int]bool{
	1746:  true, // The Coin
	40437: true, // Counterfeit Coin
	254:   true, // Innervate
	69550: true, // Innervate (core set)
}

// --- Enums ---

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelection
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseSelection:
		return "selection"
	case PhaseResult:
		return "result"
	default:
		return "idle"
	}
}

type TurnOrder int

const (
	TurnFirst TurnOrder = iota
	TurnSecond
)

func (t TurnOrder) String() string {
	if t == TurnSecond {
		return "second"
	}
	return "first"
}

// ParseTurnOrder accepts "first"/"second" (and "1"/"2").
func ParseTurnOrder(s string) (TurnOrder, error) {
	switch s {
	case "first", "FIRST", "1":
		return TurnFirst, nil
	case "second", "SECOND", "2":
		return TurnSecond, nil
	default:
		return TurnFirst, fmt.Errorf("unknown turn order %q", s)
	}
}

// OpeningHandSize returns how many cards are dealt before the mulligan.
func (t TurnOrder) OpeningHandSize() int {
	if t == TurnSecond {
		return SecondHandSize
	}
	return FirstHandSize
}

// --- Cards in play ---

// HandCard is a card held in hand. ID is assigned when the card enters the
// hand and stays with it while the hand is reordered; it is not a position.
type HandCard struct {
	Card   *card.Card
	ID     int
	IsCoin bool
}

func (h HandCard) String() string {
	return h.Card.String()
}

// DeckEntry is one row of the grouped deck view.
type DeckEntry struct {
	Card  *card.Card
	Count int
}
