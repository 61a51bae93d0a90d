package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/peterkuimelis/mullsim/internal/card"
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle[T any](r *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// removeAt splices out s[i]. An index outside s is a broken invariant.
func removeAt[T any](s []T, i int) ([]T, T) {
	if i < 0 || i >= len(s) {
		panic("game: source index out of range")
	}
	v := s[i]
	return append(s[:i:i], s[i+1:]...), v
}

// findByDbfID returns the index of the first deck card with the given id.
func findByDbfID(deck []*card.Card, dbfID int) int {
	for i, c := range deck {
		if c.DbfID == dbfID {
			return i
		}
	}
	return -1
}

// findByType returns the index of the first deck card of the given type,
// scanning from the top.
func findByType(deck []*card.Card, cardType string) int {
	for i, c := range deck {
		if c.Type == cardType {
			return i
		}
	}
	return -1
}

// groupDeck collapses the deck by dbfId, ordered by cost then name.
func groupDeck(deck []*card.Card) []DeckEntry {
	index := make(map[int]int)
	var entries []DeckEntry
	for _, c := range deck {
		if i, ok := index[c.DbfID]; ok {
			entries[i].Count++
			continue
		}
		index[c.DbfID] = len(entries)
		entries = append(entries, DeckEntry{Card: c, Count: 1})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Card, entries[j].Card
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.DbfID < b.DbfID
	})
	return entries
}
