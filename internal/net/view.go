package net

import (
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/game"
	"github.com/peterkuimelis/mullsim/internal/log"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

func cardView(c *card.Card) CardView {
	return CardView{
		DbfID:     c.DbfID,
		ID:        c.ID,
		Name:      c.Name,
		Cost:      c.Cost,
		Type:      c.Type,
		Rarity:    c.Rarity,
		CardClass: c.CardClass,
		Text:      c.Text,
	}
}

// BuildStateView renders the engine for the presentation layer.
func BuildStateView(e *game.Engine, sessionID string, tally stats.Tally) *StateView {
	s := e.State()
	lang := e.Language()
	sv := &StateView{
		Session:      sessionID,
		Ready:        e.Ready(),
		Language:     string(lang),
		Phase:        e.Phase().String(),
		TurnOrder:    e.TurnOrder().String(),
		Turn:         s.Turn,
		ManaSpent:    s.ManaSpent,
		ManaThisTurn: s.ManaThisTurn,
		TotalMana:    s.TotalMana,
		DeckSize:     e.SourceSize(),
		Hand:         []HandCardView{},
		Deck:         []CardView{},
		Grouped:      []DeckEntryView{},
		Logs:         []LogView{},
		CanUndo:      e.HistoryLen() > 0,
		Stats:        tally,
	}

	selected := make(map[int]bool)
	for _, i := range e.Selected() {
		selected[i] = true
	}
	for i, h := range s.Hand {
		sv.Hand = append(sv.Hand, HandCardView{
			Index:    i,
			ID:       h.ID,
			Card:     cardView(h.Card),
			Coin:     h.IsCoin,
			Selected: selected[i],
		})
	}
	for _, c := range s.Deck {
		sv.Deck = append(sv.Deck, cardView(c))
	}
	for _, g := range e.DeckView(true) {
		sv.Grouped = append(sv.Grouped, DeckEntryView{Card: cardView(g.Card), Count: g.Count})
	}
	for _, ev := range s.Logs {
		sv.Logs = append(sv.Logs, LogView{
			Seq:     ev.Seq,
			Turn:    ev.Turn,
			Type:    ev.Type.String(),
			Card:    ev.Card,
			Details: ev.Details,
		})
	}

	if in := e.Interaction(); in != nil {
		iv := &InteractionView{
			Kind:        string(in.Strategy.Kind()),
			Title:       in.Title(lang),
			Description: in.Description(lang),
		}
		for i, o := range in.Options {
			iv.Options = append(iv.Options, OptionView{
				Index:       i,
				ID:          o.ID,
				Card:        cardView(o.Card),
				SourceIndex: o.SourceIndex,
			})
		}
		for _, a := range in.Actions {
			iv.Actions = append(iv.Actions, ActionView{
				Label: log.Text(lang, a.Label),
				Type:  string(a.Type),
				Style: a.Style,
			})
		}
		sv.Interaction = iv
	}
	return sv
}
