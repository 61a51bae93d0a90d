package deckcode

import (
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/mullsim/internal/card"
)

// 0,1,2 | heroes [7] | singles [1 2] | doubles [3] | multi [(4,5)]
const sampleCode = "AAECAQcCAQIBAwEEBQ=="

func TestDecodeSections(t *testing.T) {
	d, err := Decode(sampleCode)
	require.NoError(t, err)

	assert.Equal(t, FormatStandard, d.Format)
	assert.Equal(t, []int{7}, d.Heroes)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 2, 4: 5}, d.Cards)
	assert.Equal(t, 9, d.Size())
	assert.Equal(t, []int{1, 2, 3, 4}, d.IDs())
}

func TestDecodeMultiByteVarintAndTrailingSection(t *testing.T) {
	d, err := Decode("AAECAQcBuwIAAAG7AgEJ")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{315: 1}, d.Cards)
}

func TestDecodePastedExport(t *testing.T) {
	pasted := "### My Mage\n# Class: Mage\n# Format: Standard\n#\n" + sampleCode + "\n#\n# To use this deck, copy it to your clipboard\n"
	d, err := Decode(pasted)
	require.NoError(t, err)
	assert.Equal(t, 9, d.Size())
}

func TestDecodeErrors(t *testing.T) {
	// 0,1,2 | no heroes | no singles | no doubles | multi [(100, 2^31)]
	huge := binary.AppendUvarint([]byte{0, 1, 2, 0, 0, 0, 1, 100}, 1<<31)
	many := map[int]int{}
	for id := 1; id <= 6; id++ {
		many[id] = MaxCopies
	}

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"blank", "   \n ", ErrEmpty},
		{"comments only", "# nothing here", ErrEmpty},
		{"not base64", "!!!not-a-deck!!!", ErrMalformed},
		{"truncated", "AAECAQcCAQ==", ErrMalformed},
		{"reserved byte", "AQECAAAAAA==", ErrMalformed},
		{"too many copies", base64.StdEncoding.EncodeToString(huge), ErrMalformed},
		{"deck too large", Encode(&Deck{Format: FormatWild, Cards: many}), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeValidEmptyDeck(t *testing.T) {
	d, err := Decode("AAECAAAAAA==")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Size())
}

func TestEncodeMatchesStream(t *testing.T) {
	d := &Deck{Format: FormatStandard, Heroes: []int{7}, Cards: map[int]int{4: 5, 3: 2, 2: 1, 1: 1}}
	assert.Equal(t, sampleCode, Encode(d))
}

type fakeCatalog map[int]*card.Card

func (f fakeCatalog) Lookup(id int) (*card.Card, bool) {
	c, ok := f[id]
	return c, ok
}

func TestExpandSkipsUnknownIDs(t *testing.T) {
	d, err := Decode(sampleCode)
	require.NoError(t, err)

	cat := fakeCatalog{
		1: {DbfID: 1, Name: "One"},
		3: {DbfID: 3, Name: "Three"},
	}
	flat := d.Expand(cat)
	require.Len(t, flat, 3)
	assert.Equal(t, "One", flat[0].Name)
	assert.Same(t, flat[1], flat[2])
	assert.Equal(t, "Three", flat[2].Name)
}

func TestDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	yaml := "decks:\n  - name: Sample\n    code: " + sampleCode + "\n  - name: Empty\n    code: AAECAAAAAA==\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	entry, err := DeckByNumber(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "Empty", entry.Name)

	_, err = DeckByNumber(path, 3)
	assert.Error(t, err)

	df, err := ParseDeckFile(path)
	require.NoError(t, err)
	require.Len(t, df.Decks, 2)
	assert.Equal(t, sampleCode, df.Decks[0].Code)
}
