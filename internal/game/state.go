package game

import (
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

// Snapshot is the complete undoable state of a simulation run.
// Deck index 0 is the top of the deck; the last element is the bottom.
type Snapshot struct {
	Hand         []HandCard
	Deck         []*card.Card
	Logs         []log.GameEvent
	Turn         int // 1-based once the mulligan is confirmed
	ManaSpent    int // this turn
	ManaThisTurn int // available this turn, may go negative
	TotalMana    int
}

// Clone returns a copy that shares no slice storage with s. Cards are
// immutable and stay shared.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Hand = append([]HandCard(nil), s.Hand...)
	c.Deck = append([]*card.Card(nil), s.Deck...)
	c.Logs = append([]log.GameEvent(nil), s.Logs...)
	return c
}

// HandSize returns the number of cards in hand.
func (s Snapshot) HandSize() int {
	return len(s.Hand)
}

// DeckSize returns the number of cards remaining in the deck.
func (s Snapshot) DeckSize() int {
	return len(s.Deck)
}

// History is the undo stack. Pushed snapshots must already be independent
// copies of the live state.
type History struct {
	entries []Snapshot
}

func (h *History) Push(s Snapshot) {
	h.entries = append(h.entries, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	s := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = Snapshot{}
	h.entries = h.entries[:len(h.entries)-1]
	return s, true
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Clear() {
	h.entries = nil
}

// Reset replaces the stack with a single entry.
func (h *History) Reset(s Snapshot) {
	h.entries = []Snapshot{s}
}
