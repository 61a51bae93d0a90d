package game

import (
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/log"
)

// Interaction is an open selection waiting for the player's choice.
type Interaction struct {
	Strategy Strategy
	Options  []Option
	Actions  []Action
}

// Title returns the localized heading for the interaction.
func (in *Interaction) Title(lang card.Language) string {
	return log.Text(lang, in.Strategy.Title())
}

func (in *Interaction) Description(lang card.Language) string {
	return log.Text(lang, in.Strategy.Description())
}

// Open computes the strategy's options against the live deck and holds them
// until Resolve or Cancel. Opening does not touch the state or history.
func (e *Engine) Open(s Strategy) (*Interaction, error) {
	if err := e.canAct(); err != nil {
		return nil, err
	}
	opts := s.Options(e.state.Clone(), e.env())
	if len(opts) == 0 {
		if f, ok := s.(interface{ TypeFilter() string }); ok && f.TypeFilter() != "" {
			return nil, &NoCardOfTypeError{Type: f.TypeFilter()}
		}
		return nil, ErrEmptyDeck
	}
	e.interaction = &Interaction{Strategy: s, Options: opts, Actions: s.Actions()}
	return e.interaction, nil
}

// Resolve applies the chosen option and action. If the strategy chains and
// its follow-up has options, the follow-up becomes the open interaction.
func (e *Engine) Resolve(optionIndex int, act ActionType) error {
	if !e.ready {
		return ErrNotReady
	}
	in := e.interaction
	if in == nil {
		return ErrNoInteraction
	}
	if optionIndex < 0 || optionIndex >= len(in.Options) {
		return ErrBadIndex
	}
	if !offers(in.Actions, act) {
		return ErrBadAction
	}
	opt := in.Options[optionIndex]
	picked := e.state.Deck[opt.SourceIndex]

	e.saveHistory()
	env := e.env()
	e.state = in.Strategy.Resolve(e.state.Clone(), opt, act, env)
	typ, key := in.Strategy.Logged(act)
	e.appendLog(log.NewInteractionEvent(e.lang, e.state.Turn, typ, key, picked.Name, picked.Type))

	e.interaction = nil
	if c, ok := in.Strategy.(Chainer); ok {
		if next := c.FollowUp(opt); next != nil {
			if opts := next.Options(e.state.Clone(), env); len(opts) > 0 {
				e.interaction = &Interaction{Strategy: next, Options: opts, Actions: next.Actions()}
			}
		}
	}
	return nil
}

// Cancel closes the open interaction without changing anything.
func (e *Engine) Cancel() error {
	if e.interaction == nil {
		return ErrNoInteraction
	}
	e.interaction = nil
	return nil
}

func offers(actions []Action, t ActionType) bool {
	for _, a := range actions {
		if a.Type == t {
			return true
		}
	}
	return false
}
