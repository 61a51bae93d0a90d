package card

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBase is the public card dump.
const DefaultBase = "https://api.hearthstonejson.com/v1/latest"

const dumpFile = "cards.collectible.json"

// Loader fetches the card dump for a language and caches one DB per language.
//
// Base is either an http(s) URL prefix, a directory laid out as
// <base>/<locale>/cards.collectible.json, or a single JSON file used for
// every language.
type Loader struct {
	Base   string
	Client *http.Client

	cache *lru.Cache[Language, *DB] // safe for concurrent use
}

// NewLoader creates a loader for the given base. An empty base uses DefaultBase.
func NewLoader(base string) (*Loader, error) {
	if base == "" {
		base = DefaultBase
	}
	cache, err := lru.New[Language, *DB](len(Languages))
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}
	return &Loader{Base: base, Client: http.DefaultClient, cache: cache}, nil
}

// Load returns the catalog for lang, loading it on first use. No lock is
// held while fetching, so concurrent first loads of one language may both
// fetch; the last one cached wins.
func (l *Loader) Load(ctx context.Context, lang Language) (*DB, error) {
	if db, ok := l.cache.Get(lang); ok {
		return db, nil
	}

	cards, err := l.fetch(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("load %s cards: %w", lang.Locale(), err)
	}
	db := NewDB(lang, cards)
	l.cache.Add(lang, db)
	return db, nil
}

func (l *Loader) fetch(ctx context.Context, lang Language) ([]*Card, error) {
	if strings.HasPrefix(l.Base, "http://") || strings.HasPrefix(l.Base, "https://") {
		url := strings.TrimSuffix(l.Base, "/") + "/" + lang.Locale() + "/" + dumpFile
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		}
		return DecodeCards(resp.Body)
	}

	path := l.Base
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, lang.Locale(), dumpFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCards(f)
}

// DecodeCards parses a JSON array of cards.
func DecodeCards(r io.Reader) ([]*Card, error) {
	var cards []*Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode card dump: %w", err)
	}
	return cards, nil
}
