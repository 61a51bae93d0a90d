package game

import (
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

// Every operation here checks its guards before saving history, so a refused
// operation leaves both the state and the undo stack untouched.

// Draw moves the top card of the deck into hand.
func (e *Engine) Draw() error {
	if err := e.canAct(); err != nil {
		return err
	}
	if len(e.state.Deck) == 0 {
		return ErrEmptyDeck
	}
	e.saveHistory()
	hc := e.drawAt(0)
	e.appendLog(log.NewDrawEvent(e.lang, e.state.Turn, hc.Card.Name))
	return nil
}

// DrawType moves the first card of the given type (from the top) into hand.
func (e *Engine) DrawType(cardType string) error {
	if err := e.canAct(); err != nil {
		return err
	}
	i := findByType(e.state.Deck, cardType)
	if i < 0 {
		return &NoCardOfTypeError{Type: cardType}
	}
	e.saveHistory()
	hc := e.drawAt(i)
	e.appendLog(log.NewDrawTypeEvent(e.lang, e.state.Turn, cardType, hc.Card.Name))
	return nil
}

// EndTurn starts the next turn: mana refills one higher, capped at MaxMana,
// and a card is drawn if the deck has one.
func (e *Engine) EndTurn() error {
	if err := e.canAct(); err != nil {
		return err
	}
	e.saveHistory()
	e.beginTurn()
	return nil
}

// Play removes the hand card at i and spends its cost. Mana is not validated
// and may go negative.
func (e *Engine) Play(i int) error {
	if err := e.canAct(); err != nil {
		return err
	}
	if err := e.handIndex(i); err != nil {
		return err
	}
	e.saveHistory()
	var hc HandCard
	e.state.Hand, hc = removeAt(e.state.Hand, i)
	e.state.ManaSpent += hc.Card.Cost
	e.state.ManaThisTurn -= hc.Card.Cost
	if ManaGainIDs[hc.Card.DbfID] {
		e.state.ManaThisTurn++
	}
	e.appendLog(log.NewPlayEvent(e.lang, e.state.Turn, hc.Card.Name, hc.Card.Cost))
	return nil
}

// Shuffle re-shuffles the remaining deck.
func (e *Engine) Shuffle() error {
	if err := e.canAct(); err != nil {
		return err
	}
	if len(e.state.Deck) == 0 {
		return ErrEmptyDeck
	}
	e.saveHistory()
	shuffle(e.rng, e.state.Deck)
	e.appendLog(log.NewShuffleEvent(e.lang, e.state.Turn))
	return nil
}

// Swap exchanges the hand with the bottom of the deck. The bottom K cards
// (K = min(hand, deck)) become the hand in their deck order, and every
// previous hand card goes to the bottom. The deck is not reshuffled.
func (e *Engine) Swap() error {
	if err := e.canAct(); err != nil {
		return err
	}
	if len(e.state.Hand) == 0 {
		return ErrEmptyHand
	}
	e.saveHistory()
	s := &e.state
	k := min(len(s.Hand), len(s.Deck))
	cut := len(s.Deck) - k

	hand := make([]HandCard, 0, k)
	for _, c := range s.Deck[cut:] {
		hand = append(hand, HandCard{Card: c, ID: e.newID(), IsCoin: c.IsCoin()})
	}
	deck := append([]*card.Card(nil), s.Deck[:cut]...)
	for _, hc := range s.Hand {
		deck = append(deck, hc.Card)
	}
	s.Hand = hand
	s.Deck = deck
	e.appendLog(log.NewSwapEvent(e.lang, s.Turn, k))
	return nil
}

// Discard removes the hand card at i from the game.
func (e *Engine) Discard(i int) error {
	if err := e.canAct(); err != nil {
		return err
	}
	if err := e.handIndex(i); err != nil {
		return err
	}
	e.saveHistory()
	var hc HandCard
	e.state.Hand, hc = removeAt(e.state.Hand, i)
	e.appendLog(log.NewDiscardEvent(e.lang, e.state.Turn, hc.Card.Name))
	return nil
}

// Destroy removes the first deck card with the given dbfId.
func (e *Engine) Destroy(dbfID int) error {
	if err := e.canAct(); err != nil {
		return err
	}
	i := findByDbfID(e.state.Deck, dbfID)
	if i < 0 {
		return ErrNoMatch
	}
	e.saveHistory()
	var c *card.Card
	e.state.Deck, c = removeAt(e.state.Deck, i)
	e.appendLog(log.NewDestroyEvent(e.lang, e.state.Turn, c.Name))
	return nil
}

// Search moves the first deck card with the given dbfId into hand.
func (e *Engine) Search(dbfID int) error {
	if err := e.canAct(); err != nil {
		return err
	}
	i := findByDbfID(e.state.Deck, dbfID)
	if i < 0 {
		return ErrNoMatch
	}
	e.saveHistory()
	hc := e.drawAt(i)
	e.appendLog(log.NewSearchEvent(e.lang, e.state.Turn, hc.Card.Name))
	return nil
}

// Sink puts the hand card at i on the bottom of the deck.
func (e *Engine) Sink(i int) error {
	if err := e.canAct(); err != nil {
		return err
	}
	if err := e.handIndex(i); err != nil {
		return err
	}
	e.saveHistory()
	var hc HandCard
	e.state.Hand, hc = removeAt(e.state.Hand, i)
	e.state.Deck = append(e.state.Deck, hc.Card)
	e.appendLog(log.NewSinkEvent(e.lang, e.state.Turn, hc.Card.Name))
	return nil
}
