package web

import (
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/deckcode"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	DbfID     int    `json:"dbfId"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	Type      string `json:"type,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	CardClass string `json:"cardClass,omitempty"`
	Text      string `json:"text,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Code   string   `json:"code"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
	Error  string   `json:"error,omitempty"`
}

// DeckCount is one row of a decoded deck.
type DeckCount struct {
	Card  CardInfo `json:"card"`
	Count int      `json:"count"`
}

// DecodedDeck is the /api/decode response.
type DecodedDeck struct {
	Format  int         `json:"format"`
	Heroes  []int       `json:"heroes"`
	Size    int         `json:"size"`    // cards the catalog knows
	Unknown []int       `json:"unknown"` // ids the catalog does not know
	Cards   []DeckCount `json:"cards"`
}

func cardInfo(c *card.Card) CardInfo {
	return CardInfo{
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

func deckInfos(df *deckcode.DeckFile, db *card.DB) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Code:   d.Code,
			Cards:  []string{},
		}
		deck, err := deckcode.Decode(d.Code)
		if err != nil {
			di.Error = err.Error()
			decks = append(decks, di)
			continue
		}
		flat := deck.Expand(db)
		di.Size = len(flat)
		// Unique card names for display
		seen := make(map[int]bool)
		for _, c := range flat {
			if !seen[c.DbfID] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.DbfID] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}

func decodedDeck(deck *deckcode.Deck, db *card.DB) DecodedDeck {
	out := DecodedDeck{
		Format:  deck.Format,
		Heroes:  append([]int{}, deck.Heroes...),
		Unknown: []int{},
		Cards:   []DeckCount{},
	}
	var known []*card.Card
	for _, id := range deck.IDs() {
		c, ok := db.Lookup(id)
		if !ok {
			out.Unknown = append(out.Unknown, id)
			continue
		}
		known = append(known, c)
		out.Size += deck.Cards[id]
	}
	card.SortByCost(known)
	for _, c := range known {
		out.Cards = append(out.Cards, DeckCount{Card: cardInfo(c), Count: deck.Cards[c.DbfID]})
	}
	return out
}
