package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

// Env is the engine-owned state a strategy may draw on while computing
// options or resolving.
type Env struct {
	Rand   *rand.Rand
	NextID func() int
}

// ActionType names what happens to a chosen option.
type ActionType string

const (
	ActionPick ActionType = "PICK"
	ActionCopy ActionType = "COPY"
)

type Action struct {
	Label log.MsgKey
	Type  ActionType
	Style string // "primary" or "secondary"
}

// Option is one candidate card. SourceIndex is an absolute index into the
// deck the options were computed from, or -1 for cards not in the deck.
type Option struct {
	ID          string
	Card        *card.Card
	SourceIndex int
}

// Strategy is a card-selection mechanic. Options is called once when the
// interaction opens; Resolve receives a snapshot it may modify and returns
// the result.
type Strategy interface {
	Kind() Kind
	Title() log.MsgKey
	Description() log.MsgKey
	Options(s Snapshot, env Env) []Option
	Actions() []Action
	Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot
	// Logged names the log entry written for a resolved action.
	Logged(act ActionType) (log.EventType, log.MsgKey)
}

// Chainer is implemented by strategies that open a second interaction once
// resolved. FollowUp returns nil when there is nothing to chain into.
type Chainer interface {
	FollowUp(selected Option) Strategy
}

// Kind identifies a strategy variant.
type Kind string

const (
	KindDiscover      Kind = "discover"
	KindDredge        Kind = "dredge"
	KindFracking      Kind = "fracking"
	KindWaveshaping   Kind = "waveshaping"
	KindPickTwo       Kind = "pick_two"
	KindPickRemaining Kind = "pick_remaining"
)

// NewStrategy builds a strategy by name. filter is a card type and only
// applies to Discover.
func NewStrategy(kind Kind, filter string) (Strategy, error) {
	switch kind {
	case KindDiscover:
		return &DiscoverStrategy{Filter: filter}, nil
	case KindDredge:
		return &DredgeStrategy{}, nil
	case KindFracking:
		return &FrackingStrategy{}, nil
	case KindWaveshaping:
		return &WaveshapingStrategy{}, nil
	case KindPickTwo:
		return &PickTwoStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", kind)
	}
}

var pickAction = Action{Label: log.LabelSelect, Type: ActionPick, Style: "primary"}

func option(c *card.Card, idx int) Option {
	return Option{ID: strconv.Itoa(idx), Card: c, SourceIndex: idx}
}

// sampleUnique walks the deck positions in random order and keeps up to n
// options with distinct dbfIds. filter restricts the pool to one card type.
func sampleUnique(deck []*card.Card, filter string, n int, r *rand.Rand) []Option {
	var pool []int
	for i, c := range deck {
		if filter == "" || c.Type == filter {
			pool = append(pool, i)
		}
	}
	shuffle(r, pool)

	seen := make(map[int]bool)
	var opts []Option
	for _, i := range pool {
		if len(opts) == n {
			break
		}
		c := deck[i]
		if seen[c.DbfID] {
			continue
		}
		seen[c.DbfID] = true
		opts = append(opts, option(c, i))
	}
	return opts
}

// bottomOptions returns the bottom min(n, len) cards, closest to the bottom first.
func bottomOptions(deck []*card.Card, n int) []Option {
	k := min(n, len(deck))
	opts := make([]Option, 0, k)
	for i := len(deck) - 1; i >= len(deck)-k; i-- {
		opts = append(opts, option(deck[i], i))
	}
	return opts
}

// takeToHand removes deck[idx] and appends it to the hand.
func takeToHand(s Snapshot, idx int, env Env) Snapshot {
	var c *card.Card
	s.Deck, c = removeAt(s.Deck, idx)
	s.Hand = append(s.Hand, HandCard{Card: c, ID: env.NextID(), IsCoin: c.IsCoin()})
	return s
}

// --- Discover ---

// DiscoverStrategy offers up to three distinct cards from the deck. PICK
// draws the chosen card; COPY adds a duplicate and leaves the deck alone.
type DiscoverStrategy struct {
	Filter string
}

func (d *DiscoverStrategy) Kind() Kind              { return KindDiscover }
func (d *DiscoverStrategy) Title() log.MsgKey       { return log.ModalDiscover }
func (d *DiscoverStrategy) Description() log.MsgKey { return log.ModalDiscoverDesc }

// TypeFilter reports the card type the pool is restricted to.
func (d *DiscoverStrategy) TypeFilter() string { return d.Filter }

func (d *DiscoverStrategy) Options(s Snapshot, env Env) []Option {
	return sampleUnique(s.Deck, d.Filter, DiscoverCount, env.Rand)
}

func (d *DiscoverStrategy) Actions() []Action {
	return []Action{
		pickAction,
		{Label: log.LabelAddCopy, Type: ActionCopy, Style: "secondary"},
	}
}

func (d *DiscoverStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	if act == ActionCopy {
		c := s.Deck[opt.SourceIndex]
		s.Hand = append(s.Hand, HandCard{Card: c, ID: env.NextID(), IsCoin: c.IsCoin()})
		return s
	}
	return takeToHand(s, opt.SourceIndex, env)
}

func (d *DiscoverStrategy) Logged(act ActionType) (log.EventType, log.MsgKey) {
	switch {
	case act == ActionCopy:
		return log.EventDiscoverCopy, log.MsgDiscoverCopy
	case d.Filter != "":
		return log.EventDiscoverType, log.MsgDiscoverType
	default:
		return log.EventDiscover, log.MsgDiscover
	}
}

// --- Dredge ---

// DredgeStrategy looks at the bottom three cards and moves one to the top.
type DredgeStrategy struct{}

func (d *DredgeStrategy) Kind() Kind              { return KindDredge }
func (d *DredgeStrategy) Title() log.MsgKey       { return log.ModalDredge }
func (d *DredgeStrategy) Description() log.MsgKey { return log.ModalDredgeDesc }
func (d *DredgeStrategy) Actions() []Action       { return []Action{pickAction} }

func (d *DredgeStrategy) Options(s Snapshot, env Env) []Option {
	return bottomOptions(s.Deck, MaxBottomLook)
}

func (d *DredgeStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	var c *card.Card
	s.Deck, c = removeAt(s.Deck, opt.SourceIndex)
	s.Deck = append([]*card.Card{c}, s.Deck...)
	return s
}

func (d *DredgeStrategy) Logged(ActionType) (log.EventType, log.MsgKey) {
	return log.EventDredge, log.MsgDredge
}

// --- Fracking ---

// FrackingStrategy looks at the bottom three cards, draws one and destroys
// the rest.
type FrackingStrategy struct{}

func (f *FrackingStrategy) Kind() Kind              { return KindFracking }
func (f *FrackingStrategy) Title() log.MsgKey       { return log.ModalFracking }
func (f *FrackingStrategy) Description() log.MsgKey { return log.ModalFrackingDesc }
func (f *FrackingStrategy) Actions() []Action       { return []Action{pickAction} }

func (f *FrackingStrategy) Options(s Snapshot, env Env) []Option {
	return bottomOptions(s.Deck, MaxBottomLook)
}

func (f *FrackingStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	cut := len(s.Deck) - min(MaxBottomLook, len(s.Deck))
	if opt.SourceIndex < cut || opt.SourceIndex >= len(s.Deck) {
		panic("game: fracking option outside the examined cards")
	}
	c := s.Deck[opt.SourceIndex]
	s.Deck = s.Deck[:cut:cut]
	s.Hand = append(s.Hand, HandCard{Card: c, ID: env.NextID(), IsCoin: c.IsCoin()})
	return s
}

func (f *FrackingStrategy) Logged(ActionType) (log.EventType, log.MsgKey) {
	return log.EventFracking, log.MsgFracking
}

// --- Waveshaping ---

// WaveshapingStrategy offers three distinct cards, draws the chosen one and
// puts the others on the bottom in random order.
type WaveshapingStrategy struct {
	offered []Option
}

func (w *WaveshapingStrategy) Kind() Kind              { return KindWaveshaping }
func (w *WaveshapingStrategy) Title() log.MsgKey       { return log.ModalWaveshaping }
func (w *WaveshapingStrategy) Description() log.MsgKey { return log.ModalWaveshapingDesc }
func (w *WaveshapingStrategy) Actions() []Action       { return []Action{pickAction} }

func (w *WaveshapingStrategy) Options(s Snapshot, env Env) []Option {
	w.offered = sampleUnique(s.Deck, "", DiscoverCount, env.Rand)
	return w.offered
}

func (w *WaveshapingStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	idx := make([]int, len(w.offered))
	for i, o := range w.offered {
		idx[i] = o.SourceIndex
	}
	// Descending, so each removal leaves the remaining indices valid.
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))

	var chosen *card.Card
	var rest []*card.Card
	for _, i := range idx {
		var c *card.Card
		s.Deck, c = removeAt(s.Deck, i)
		if i == opt.SourceIndex {
			chosen = c
		} else {
			rest = append(rest, c)
		}
	}
	if chosen == nil {
		panic("game: waveshaping option was not offered")
	}
	s.Hand = append(s.Hand, HandCard{Card: chosen, ID: env.NextID(), IsCoin: chosen.IsCoin()})
	shuffle(env.Rand, rest)
	s.Deck = append(s.Deck, rest...)
	return s
}

func (w *WaveshapingStrategy) Logged(ActionType) (log.EventType, log.MsgKey) {
	return log.EventWaveshape, log.MsgWaveshape
}

// --- Pick two ---

// PickTwoStrategy is Discover's PICK followed by a second choice among the
// cards that were not taken.
type PickTwoStrategy struct {
	offered []Option
}

func (p *PickTwoStrategy) Kind() Kind              { return KindPickTwo }
func (p *PickTwoStrategy) Title() log.MsgKey       { return log.ModalPickTwo }
func (p *PickTwoStrategy) Description() log.MsgKey { return log.ModalPickTwoDesc }
func (p *PickTwoStrategy) Actions() []Action       { return []Action{pickAction} }

func (p *PickTwoStrategy) Options(s Snapshot, env Env) []Option {
	p.offered = sampleUnique(s.Deck, "", DiscoverCount, env.Rand)
	return p.offered
}

func (p *PickTwoStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	return takeToHand(s, opt.SourceIndex, env)
}

func (p *PickTwoStrategy) Logged(ActionType) (log.EventType, log.MsgKey) {
	return log.EventPickTwo, log.MsgPickTwo
}

// FollowUp re-points the options that were not chosen at the deck left after
// the chosen card was removed.
func (p *PickTwoStrategy) FollowUp(selected Option) Strategy {
	var rest []Option
	for _, o := range p.offered {
		if o.SourceIndex == selected.SourceIndex {
			continue
		}
		if o.SourceIndex > selected.SourceIndex {
			o.SourceIndex--
		}
		o.ID = strconv.Itoa(o.SourceIndex)
		rest = append(rest, o)
	}
	if len(rest) == 0 {
		return nil
	}
	return &PickRemainingStrategy{remaining: rest}
}

// PickRemainingStrategy is the second stage of PickTwoStrategy. Choosing
// behaves like a one-off Discover PICK.
type PickRemainingStrategy struct {
	remaining []Option
}

func (p *PickRemainingStrategy) Kind() Kind              { return KindPickRemaining }
func (p *PickRemainingStrategy) Title() log.MsgKey       { return log.ModalPickRemaining }
func (p *PickRemainingStrategy) Description() log.MsgKey { return log.ModalPickRemainingDesc }
func (p *PickRemainingStrategy) Actions() []Action       { return []Action{pickAction} }

func (p *PickRemainingStrategy) Options(s Snapshot, env Env) []Option {
	var opts []Option
	for _, o := range p.remaining {
		if o.SourceIndex >= 0 && o.SourceIndex < len(s.Deck) {
			o.Card = s.Deck[o.SourceIndex]
			opts = append(opts, o)
		}
	}
	return opts
}

func (p *PickRemainingStrategy) Resolve(s Snapshot, opt Option, act ActionType, env Env) Snapshot {
	return takeToHand(s, opt.SourceIndex, env)
}

func (p *PickRemainingStrategy) Logged(ActionType) (log.EventType, log.MsgKey) {
	return log.EventPickRemaining, log.MsgPickRemaining
}
