package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

func minion(name string, dbfID, cost int) *card.Card {
	return &card.Card{ID: fmt.Sprintf("T_%d", dbfID), DbfID: dbfID, Name: name, Cost: cost, Type: card.TypeMinion}
}

func spell(name string, dbfID, cost int) *card.Card {
	return &card.Card{ID: fmt.Sprintf("T_%d", dbfID), DbfID: dbfID, Name: name, Cost: cost, Type: card.TypeSpell}
}

// makeDeck returns n distinct cards. Every third card is a spell.
func makeDeck(n int) []*card.Card {
	cards := make([]*card.Card, n)
	for i := range cards {
		name := fmt.Sprintf("Card %02d", i)
		if i%3 == 0 {
			cards[i] = spell(name, 100+i, i%8)
		} else {
			cards[i] = minion(name, 100+i, i%8)
		}
	}
	return cards
}

// newTestEngine returns a seeded engine with cards loaded.
func newTestEngine(t *testing.T, cards []*card.Card) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(Config{Language: card.LangEN, Logger: logger, Seed: 42})
	e.Load(cards)
	return e, logger
}

// playingEngine returns an engine past the mulligan with nothing replaced.
func playingEngine(t *testing.T, order TurnOrder, cards []*card.Card) *Engine {
	t.Helper()
	e, _ := newTestEngine(t, cards)
	if err := e.Start(order); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.ConfirmMulligan([]int{}); err != nil {
		t.Fatalf("ConfirmMulligan: %v", err)
	}
	return e
}

func countByDbfID(cards []*card.Card) map[int]int {
	m := make(map[int]int)
	for _, c := range cards {
		m[c.DbfID]++
	}
	return m
}

func handCards(hand []HandCard) []*card.Card {
	out := make([]*card.Card, len(hand))
	for i, h := range hand {
		out[i] = h.Card
	}
	return out
}

func cardCount(e *Engine) int {
	s := e.State()
	return len(s.Hand) + len(s.Deck)
}

func dumpLog(t *testing.T, e *Engine) {
	t.Helper()
	t.Logf("log:\n%s", log.FormatAll(e.State().Logs))
}
