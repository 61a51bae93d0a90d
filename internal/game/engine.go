package game

import (
	"math/rand"
	"sort"

	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

// Config configures an Engine.
type Config struct {
	Language card.Language
	// Bonus supplies the card given to the player going second.
	// Defaults to card.Coin.
	Bonus  func(card.Language) *card.Card
	Logger log.EventLogger // receives every entry appended to the run log
	Seed   int64           // 0 seeds from the clock
}

// Engine owns one simulation run: the source deck list, the live snapshot,
// the undo stack and at most one open interaction. It is not safe for
// concurrent use; callers serialize access.
type Engine struct {
	cfg  Config
	lang card.Language
	rng  *rand.Rand

	ready  bool
	source []*card.Card

	phase    Phase
	order    TurnOrder
	selected map[int]bool

	state   Snapshot
	history History
	nextID  int

	interaction *Interaction
}

// NewEngine creates an idle engine with no deck loaded.
func NewEngine(cfg Config) *Engine {
	if cfg.Bonus == nil {
		cfg.Bonus = card.Coin
	}
	if cfg.Language == "" {
		cfg.Language = card.LangEN
	}
	return &Engine{
		cfg:      cfg,
		lang:     cfg.Language,
		rng:      newRand(cfg.Seed),
		ready:    true,
		selected: make(map[int]bool),
		nextID:   firstUniqueID,
	}
}

// --- Setup ---

// Load stores the flat deck list and returns the engine to idle.
func (e *Engine) Load(cards []*card.Card) {
	e.source = append([]*card.Card(nil), cards...)
	e.reset()
	e.phase = PhaseIdle
}

// SetReady toggles the card-data guard. While not ready every mutating
// operation returns ErrNotReady.
func (e *Engine) SetReady(ready bool) {
	e.ready = ready
}

func (e *Engine) Ready() bool {
	return e.ready
}

func (e *Engine) reset() {
	e.state = Snapshot{}
	e.history.Clear()
	e.selected = make(map[int]bool)
	e.interaction = nil
	e.nextID = firstUniqueID
}

// Start begins a new run: shuffles a copy of the source deck and deals the
// opening hand. Any previous run is discarded.
func (e *Engine) Start(order TurnOrder) error {
	if !e.ready {
		return ErrNotReady
	}
	if len(e.source) == 0 {
		return ErrEmptyDeck
	}
	e.reset()
	e.order = order

	deck := append([]*card.Card(nil), e.source...)
	shuffle(e.rng, deck)

	n := min(order.OpeningHandSize(), len(deck))
	hand := make([]HandCard, n)
	for i := 0; i < n; i++ {
		hand[i] = HandCard{Card: deck[i], ID: i}
	}
	e.state.Hand = hand
	e.state.Deck = deck[n:]
	e.phase = PhaseSelection
	e.appendLog(log.NewStartEvent(e.lang, order == TurnSecond))
	return nil
}

// ToggleSelection marks or unmarks a hand slot for replacement. It reports
// whether the slot is now selected.
func (e *Engine) ToggleSelection(i int) (bool, error) {
	if !e.ready {
		return false, ErrNotReady
	}
	if e.phase != PhaseSelection {
		return false, ErrWrongPhase
	}
	if i < 0 || i >= len(e.state.Hand) {
		return false, ErrBadIndex
	}
	if e.state.Hand[i].IsCoin {
		return false, nil
	}
	if e.selected[i] {
		delete(e.selected, i)
		return false, nil
	}
	e.selected[i] = true
	return true, nil
}

// Selected returns the marked hand slots in ascending order.
func (e *Engine) Selected() []int {
	out := make([]int, 0, len(e.selected))
	for i := range e.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ConfirmMulligan replaces the hand slots in indices. Replacements come from
// the top of the deck before the replaced cards are shuffled back, so a card
// can never come back as its own replacement. A nil indices confirms the
// current selection marks.
func (e *Engine) ConfirmMulligan(indices []int) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.phase != PhaseSelection {
		return ErrWrongPhase
	}
	if indices == nil {
		indices = e.Selected()
	}
	toReplace := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(e.state.Hand) {
			return ErrBadIndex
		}
		if !e.state.Hand[i].IsCoin {
			toReplace[i] = true
		}
	}

	s := e.state.Clone()
	var setAside []*card.Card
	for i := range s.Hand {
		if !toReplace[i] || len(s.Deck) == 0 {
			continue
		}
		setAside = append(setAside, s.Hand[i].Card)
		s.Hand[i] = HandCard{Card: s.Deck[0], ID: e.newID()}
		s.Deck = s.Deck[1:]
	}
	s.Deck = append(s.Deck, setAside...)
	shuffle(e.rng, s.Deck)

	if e.order == TurnSecond {
		s.Hand = append(s.Hand, HandCard{Card: e.cfg.Bonus(e.lang), ID: e.newID(), IsCoin: true})
	}

	swapped := len(toReplace)
	kept := len(e.state.Hand) - swapped
	s.Turn = 0
	s.ManaSpent = 0
	s.ManaThisTurn = 0
	s.TotalMana = 0
	e.state = s
	e.phase = PhaseResult
	e.selected = make(map[int]bool)
	e.appendLog(log.NewMulliganEvent(e.lang, 0, kept, swapped))

	// The post-mulligan position is the first history entry.
	e.history.Reset(e.state.Clone())
	e.beginTurn()
	return nil
}

// beginTurn advances the turn counter, refills mana and draws.
func (e *Engine) beginTurn() {
	s := &e.state
	s.Turn++
	s.ManaSpent = 0
	s.TotalMana = min(s.TotalMana+1, MaxMana)
	s.ManaThisTurn = s.TotalMana

	drawn := ""
	if len(s.Deck) > 0 {
		drawn = e.drawAt(0).Card.Name
	}
	e.appendLog(log.NewTurnEvent(e.lang, s.Turn, drawn))
}

// --- History ---

func (e *Engine) saveHistory() {
	e.history.Push(e.state.Clone())
}

// Undo restores the snapshot taken before the most recent mutation.
func (e *Engine) Undo() error {
	if !e.ready {
		return ErrNotReady
	}
	if e.interaction != nil {
		return ErrInteractionOpen
	}
	s, ok := e.history.Pop()
	if !ok {
		return ErrNoHistory
	}
	e.state = s
	return nil
}

// --- Internal helpers ---

func (e *Engine) newID() int {
	id := e.nextID
	e.nextID++
	return id
}

func (e *Engine) env() Env {
	return Env{Rand: e.rng, NextID: e.newID}
}

func (e *Engine) appendLog(ev log.GameEvent) {
	ev.Seq = len(e.state.Logs) + 1
	e.state.Logs = append(e.state.Logs, ev)
	if e.cfg.Logger != nil {
		e.cfg.Logger.Log(ev)
	}
}

// drawAt moves deck[i] into hand with a new id.
func (e *Engine) drawAt(i int) HandCard {
	var c *card.Card
	e.state.Deck, c = removeAt(e.state.Deck, i)
	hc := HandCard{Card: c, ID: e.newID(), IsCoin: c.IsCoin()}
	e.state.Hand = append(e.state.Hand, hc)
	return hc
}

// canAct is the common guard for post-mulligan operations.
func (e *Engine) canAct() error {
	if !e.ready {
		return ErrNotReady
	}
	if e.phase != PhaseResult {
		return ErrWrongPhase
	}
	if e.interaction != nil {
		return ErrInteractionOpen
	}
	return nil
}

func (e *Engine) handIndex(i int) error {
	if len(e.state.Hand) == 0 {
		return ErrEmptyHand
	}
	if i < 0 || i >= len(e.state.Hand) {
		return ErrBadIndex
	}
	return nil
}

// --- Accessors ---

// State returns a deep copy of the live snapshot.
func (e *Engine) State() Snapshot {
	return e.state.Clone()
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) TurnOrder() TurnOrder {
	return e.order
}

func (e *Engine) Language() card.Language {
	return e.lang
}

func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// SourceSize returns the size of the loaded deck list.
func (e *Engine) SourceSize() int {
	return len(e.source)
}

// Interaction returns the open interaction, or nil.
func (e *Engine) Interaction() *Interaction {
	return e.interaction
}

// DeckView returns the deck in true order, or grouped by card with counts.
func (e *Engine) DeckView(grouped bool) []DeckEntry {
	if grouped {
		return groupDeck(e.state.Deck)
	}
	out := make([]DeckEntry, len(e.state.Deck))
	for i, c := range e.state.Deck {
		out[i] = DeckEntry{Card: c, Count: 1}
	}
	return out
}

// Relocalize swaps every held card for its counterpart in cat, including the
// cards inside history snapshots. Cards missing from cat are kept.
// Log entries keep the language they were written in.
func (e *Engine) Relocalize(cat card.Catalog, lang card.Language) {
	e.lang = lang
	swap := func(c *card.Card) *card.Card {
		if c.IsCoin() {
			return e.cfg.Bonus(lang)
		}
		if n, ok := cat.Lookup(c.DbfID); ok {
			return n
		}
		return c
	}
	relocalize := func(s *Snapshot) {
		for i := range s.Hand {
			s.Hand[i].Card = swap(s.Hand[i].Card)
		}
		for i := range s.Deck {
			s.Deck[i] = swap(s.Deck[i])
		}
	}
	for i := range e.source {
		e.source[i] = swap(e.source[i])
	}
	relocalize(&e.state)
	for i := range e.history.entries {
		relocalize(&e.history.entries[i])
	}
	if e.interaction != nil {
		for i := range e.interaction.Options {
			e.interaction.Options[i].Card = swap(e.interaction.Options[i].Card)
		}
	}
}
