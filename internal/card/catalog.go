package card

import "sort"

// Catalog resolves numeric card ids. A missing card is reported with ok=false.
type Catalog interface {
	Lookup(dbfID int) (*Card, bool)
}

// DB is an in-memory catalog for one language.
type DB struct {
	Lang    Language
	byDbfID map[int]*Card
	byID    map[string]*Card
}

// NewDB indexes cards for the given language. The localized coin is always present.
func NewDB(lang Language, cards []*Card) *DB {
	db := &DB{
		Lang:    lang,
		byDbfID: make(map[int]*Card, len(cards)+1),
		byID:    make(map[string]*Card, len(cards)+1),
	}
	for _, c := range cards {
		if c == nil {
			continue
		}
		db.byDbfID[c.DbfID] = c
		if c.ID != "" {
			db.byID[c.ID] = c
		}
	}
	coin := Coin(lang)
	db.byID[coin.ID] = coin
	if _, ok := db.byDbfID[coin.DbfID]; !ok {
		db.byDbfID[coin.DbfID] = coin
	}
	return db
}

// Lookup implements Catalog.
func (db *DB) Lookup(dbfID int) (*Card, bool) {
	c, ok := db.byDbfID[dbfID]
	return c, ok
}

// LookupID finds a card by its string id.
func (db *DB) LookupID(id string) (*Card, bool) {
	c, ok := db.byID[id]
	return c, ok
}

// Len returns the number of distinct numeric ids.
func (db *DB) Len() int {
	return len(db.byDbfID)
}

// Cards returns every card sorted by cost, then name.
func (db *DB) Cards() []*Card {
	cards := make([]*Card, 0, len(db.byDbfID))
	for _, c := range db.byDbfID {
		cards = append(cards, c)
	}
	SortByCost(cards)
	return cards
}

// SortByCost orders cards by cost ascending, then name, then numeric id.
func SortByCost(cards []*Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.DbfID < b.DbfID
	})
}
