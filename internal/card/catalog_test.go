package card

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `[
  {"id":"CS2_029","dbfId":315,"name":"Fireball","cost":4,"type":"SPELL","rarity":"FREE","cardClass":"MAGE"},
  {"id":"CS2_023","dbfId":555,"name":"Arcane Intellect","cost":3,"type":"SPELL","cardClass":"MAGE"},
  {"id":"EX1_277","dbfId":564,"name":"Arcane Missiles","cost":1,"type":"SPELL"}
]`

func TestDBLookupAndCoin(t *testing.T) {
	cards, err := DecodeCards(strings.NewReader(dump))
	require.NoError(t, err)

	db := NewDB(LangZhTW, cards)
	fireball, ok := db.Lookup(315)
	require.True(t, ok)
	assert.Equal(t, "Fireball", fireball.Name)

	_, ok = db.Lookup(99999)
	assert.False(t, ok)

	coin, ok := db.LookupID(CoinID)
	require.True(t, ok)
	assert.Equal(t, "幸運幣", coin.Name)
	assert.True(t, coin.IsCoin())

	sorted := db.Cards()
	require.Len(t, sorted, 4)
	assert.Equal(t, "幸運幣", sorted[0].Name)
	assert.Equal(t, "Arcane Missiles", sorted[1].Name)
	assert.Equal(t, "Fireball", sorted[3].Name)
}

func TestCoinFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "The Coin", Coin(Language("fr")).Name)
	assert.Equal(t, "幸运币", Coin(LangZhCN).Name)
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("zhCN")
	require.NoError(t, err)
	assert.Equal(t, LangZhCN, lang)
	assert.Equal(t, "zhCN", lang.Locale())

	_, err = ParseLanguage("klingon")
	assert.Error(t, err)
}

func TestLoaderHTTPCachesPerLanguage(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/enUS/cards.collectible.json" && r.URL.Path != "/zhCN/cards.collectible.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(dump))
	}))
	defer srv.Close()

	l, err := NewLoader(srv.URL)
	require.NoError(t, err)

	db, err := l.Load(context.Background(), LangEN)
	require.NoError(t, err)
	assert.Equal(t, 4, db.Len())

	again, err := l.Load(context.Background(), LangEN)
	require.NoError(t, err)
	assert.Same(t, db, again)
	assert.Equal(t, int32(1), hits.Load())

	_, err = l.Load(context.Background(), LangZhCN)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	_, err = l.Load(context.Background(), LangZhTW)
	assert.Error(t, err)
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "enUS"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enUS", "cards.collectible.json"), []byte(dump), 0o644))

	l, err := NewLoader(dir)
	require.NoError(t, err)
	db, err := l.Load(context.Background(), LangEN)
	require.NoError(t, err)
	c, ok := db.Lookup(555)
	require.True(t, ok)
	assert.Equal(t, "Arcane Intellect", c.Name)
}

func TestLoaderBadDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l, err := NewLoader(path)
	require.NoError(t, err)
	_, err = l.Load(context.Background(), LangEN)
	assert.Error(t, err)
}

func TestLoaderSlowFetchDoesNotBlockCacheHits(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/zhCN/cards.collectible.json" {
			<-release
		}
		w.Write([]byte(dump))
	}))
	defer srv.Close()
	defer close(release)

	l, err := NewLoader(srv.URL)
	require.NoError(t, err)
	_, err = l.Load(context.Background(), LangEN)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), LangZhCN)
		slow <- err
	}()

	hit := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), LangEN)
		hit <- err
	}()
	select {
	case err := <-hit:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cached language waited on another language's fetch")
	}
}
