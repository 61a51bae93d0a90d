// Package deckcode reads and writes the compact deck-string format: base64
// over a byte stream of unsigned varints.
//
//	0x00 | version | format | heroes... | singles... | doubles... | (id, count)...
//
// Every list is prefixed by its varint length.
package deckcode

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterkuimelis/mullsim/internal/card"
)

// Version is the only stream version understood.
const Version = 1

// Decoded decks are bounded so a crafted string cannot expand into an
// arbitrarily large card list.
const (
	MaxCopies   = 1000 // per card id
	MaxDeckSize = 5000 // across the whole deck
)

// Formats.
const (
	FormatWild     = 1
	FormatStandard = 2
	FormatClassic  = 3
	FormatTwist    = 4
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("deckcode: empty deck string")
	// ErrMalformed is returned when the input is not a valid deck string.
	ErrMalformed = errors.New("deckcode: malformed deck string")
)

// Deck is a decoded deck string.
type Deck struct {
	Format int
	Heroes []int
	Cards  map[int]int // dbfId → count
}

// Size returns the total number of cards.
func (d *Deck) Size() int {
	n := 0
	for _, c := range d.Cards {
		n += c
	}
	return n
}

// IDs returns the distinct card ids in ascending order.
func (d *Deck) IDs() []int {
	ids := make([]int, 0, len(d.Cards))
	for id := range d.Cards {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Expand flattens the deck into one entry per physical copy, in ascending id
// order. Ids the catalog does not know are dropped.
func (d *Deck) Expand(cat card.Catalog) []*card.Card {
	var flat []*card.Card
	for _, id := range d.IDs() {
		c, ok := cat.Lookup(id)
		if !ok {
			continue
		}
		for i := 0; i < d.Cards[id]; i++ {
			flat = append(flat, c)
		}
	}
	return flat
}

// Decode parses a deck string. Pasted deck exports are accepted: comment
// lines starting with '#' are skipped and the first other line is decoded.
func Decode(s string) (*Deck, error) {
	code := extractCode(s)
	if code == "" {
		return nil, ErrEmpty
	}

	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(code, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	r := bytes.NewReader(raw)
	reserved, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	if reserved != 0 {
		return nil, fmt.Errorf("%w: reserved byte %#x", ErrMalformed, reserved)
	}

	dec := &varintReader{r: r}
	version := dec.next()
	format := dec.next()
	if dec.err == nil && version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, version)
	}

	deck := &Deck{Format: format, Cards: make(map[int]int)}
	for n := dec.next(); n > 0 && dec.err == nil; n-- {
		deck.Heroes = append(deck.Heroes, dec.next())
	}
	for copies := 1; copies <= 2; copies++ {
		for n := dec.next(); n > 0 && dec.err == nil; n-- {
			id := dec.next()
			if dec.err == nil {
				deck.Cards[id] += copies
			}
		}
	}
	for n := dec.next(); n > 0 && dec.err == nil; n-- {
		id := dec.next()
		count := dec.next()
		if dec.err == nil {
			deck.Cards[id] += count
		}
	}
	// Trailing sections (sideboards) are ignored.
	if dec.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, dec.err)
	}
	total := 0
	for id, n := range deck.Cards {
		if n > MaxCopies {
			return nil, fmt.Errorf("%w: %d copies of card %d", ErrMalformed, n, id)
		}
		total += n
	}
	if total > MaxDeckSize {
		return nil, fmt.Errorf("%w: %d cards", ErrMalformed, total)
	}
	return deck, nil
}

// Encode writes d as a deck string. Ids are written in ascending order.
func Encode(d *Deck) string {
	var singles, doubles, multi []int
	for _, id := range d.IDs() {
		switch n := d.Cards[id]; {
		case n == 1:
			singles = append(singles, id)
		case n == 2:
			doubles = append(doubles, id)
		case n > 2:
			multi = append(multi, id)
		}
	}

	var buf []byte
	buf = append(buf, 0)
	buf = binary.AppendUvarint(buf, Version)
	buf = binary.AppendUvarint(buf, uint64(d.Format))
	buf = binary.AppendUvarint(buf, uint64(len(d.Heroes)))
	for _, h := range d.Heroes {
		buf = binary.AppendUvarint(buf, uint64(h))
	}
	for _, list := range [][]int{singles, doubles} {
		buf = binary.AppendUvarint(buf, uint64(len(list)))
		for _, id := range list {
			buf = binary.AppendUvarint(buf, uint64(id))
		}
	}
	buf = binary.AppendUvarint(buf, uint64(len(multi)))
	for _, id := range multi {
		buf = binary.AppendUvarint(buf, uint64(id))
		buf = binary.AppendUvarint(buf, uint64(d.Cards[id]))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func extractCode(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

// varintReader keeps the first error so callers can read a whole section
// before checking it.
type varintReader struct {
	r   *bytes.Reader
	err error
}

func (v *varintReader) next() int {
	if v.err != nil {
		return 0
	}
	n, err := binary.ReadUvarint(v.r)
	if err != nil {
		v.err = fmt.Errorf("unexpected end of stream")
		return 0
	}
	if n > 1<<31 {
		v.err = fmt.Errorf("varint %d out of range", n)
		return 0
	}
	return int(n)
}
