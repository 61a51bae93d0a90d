package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/deckcode"
	simnet "github.com/peterkuimelis/mullsim/internal/net"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

type staticCatalogs map[card.Language]*card.DB

func (s staticCatalogs) Load(_ context.Context, lang card.Language) (*card.DB, error) {
	if db, ok := s[lang]; ok {
		return db, nil
	}
	return nil, fmt.Errorf("no %s cards", lang)
}

func testServer(t *testing.T) (*Server, stats.Store) {
	t.Helper()
	cards := []*card.Card{
		{ID: "T_1", DbfID: 1, Name: "Wisp", Cost: 0, Type: card.TypeMinion},
		{ID: "T_2", DbfID: 2, Name: "Fireball", Cost: 4, Type: card.TypeSpell},
		{ID: "T_3", DbfID: 3, Name: "Arcane Missiles", Cost: 1, Type: card.TypeSpell},
		{ID: "T_4", DbfID: 4, Name: "Yeti", Cost: 4, Type: card.TypeMinion},
	}
	dir := t.TempDir()
	decks := filepath.Join(dir, "decks.yaml")
	content := "decks:\n" +
		"  - name: Mage\n    code: " + deckcode.Encode(&deckcode.Deck{Format: 2, Heroes: []int{7}, Cards: map[int]int{1: 2, 2: 2, 3: 2, 4: 2}}) + "\n" +
		"  - name: Broken\n    code: '!!'\n"
	require.NoError(t, os.WriteFile(decks, []byte(content), 0o644))

	store := stats.NewMemoryStore()
	srv := NewServer(Config{
		Catalogs:  staticCatalogs{card.LangEN: card.NewDB(card.LangEN, cards)},
		DecksFile: decks,
		Stats:     store,
		Seed:      5,
	})
	return srv, store
}

func getJSON(t *testing.T, srv http.Handler, path string, v any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if v != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
	}
	return rec.Code
}

func TestHandleCards(t *testing.T) {
	srv, _ := testServer(t)
	var cards []CardInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/cards", &cards))

	require.Len(t, cards, 5, "catalog cards plus the coin")
	assert.Equal(t, "The Coin", cards[0].Name)
	assert.Equal(t, "Wisp", cards[1].Name)
	assert.Equal(t, "Arcane Missiles", cards[2].Name)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/cards?lang=fr", nil))
	assert.Equal(t, http.StatusBadGateway, getJSON(t, srv, "/api/cards?lang=zh-TW", nil))
}

func TestHandleDecks(t *testing.T) {
	srv, _ := testServer(t)
	var decks []DeckInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/decks", &decks))
	require.Len(t, decks, 2)

	assert.Equal(t, 1, decks[0].Number)
	assert.Equal(t, "Mage", decks[0].Name)
	assert.Equal(t, 8, decks[0].Size)
	assert.Equal(t, []string{"Wisp", "Fireball", "Arcane Missiles", "Yeti"}, decks[0].Cards)
	assert.NotEmpty(t, decks[1].Error)
}

func TestHandleDecode(t *testing.T) {
	srv, _ := testServer(t)
	code := deckcode.Encode(&deckcode.Deck{Format: 1, Heroes: []int{7}, Cards: map[int]int{2: 1, 3: 2, 99: 1}})

	var deck DecodedDeck
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/decode?code="+url.QueryEscape(code), &deck))
	assert.Equal(t, 3, deck.Size)
	assert.Equal(t, []int{99}, deck.Unknown)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "Arcane Missiles", deck.Cards[0].Card.Name)
	assert.Equal(t, 2, deck.Cards[0].Count)

	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/decode?code=", &body))
	assert.Equal(t, "empty deck code", body["error"])
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/decode?code=%21%21", nil))
}

func TestHandleStats(t *testing.T) {
	srv, store := testServer(t)
	_, err := store.SetSuccess(context.Background(), "alice", 0, 4)
	require.NoError(t, err)

	var tally stats.Tally
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/stats?profile=alice", &tally))
	assert.Equal(t, 4, tally.Success[0])
}

func TestWebSocketSession(t *testing.T) {
	srv, store := testServer(t)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?profile=bob"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	read := func() simnet.ServerMessage {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var msg simnet.ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}
	write := func(msg simnet.ClientMessage) simnet.ServerMessage {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, conn.Write(ctx, websocket.MessageText, data))
		return read()
	}

	first := read()
	require.Equal(t, simnet.ReplyState, first.Type)
	assert.True(t, first.State.Ready)

	reply := write(simnet.ClientMessage{Type: simnet.MsgLoad, DeckNumber: 1})
	require.Equal(t, simnet.ReplyState, reply.Type, reply.Message)
	assert.Equal(t, 8, reply.State.DeckSize)

	write(simnet.ClientMessage{Type: simnet.MsgStart, Turn: "first"})
	reply = write(simnet.ClientMessage{Type: simnet.MsgConfirm})
	assert.Equal(t, "result", reply.State.Phase)
	assert.Equal(t, 1, reply.State.Stats.Total)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	assert.Equal(t, simnet.ReplyError, read().Type)

	tally, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Total)

	conn.Close(websocket.StatusNormalClosure, "")
}
