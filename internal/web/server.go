package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/deckcode"
	simnet "github.com/peterkuimelis/mullsim/internal/net"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

// Config configures the web server.
type Config struct {
	Catalogs  simnet.CatalogSource
	DecksFile string
	Stats     stats.Store
	Language  card.Language
	Seed      int64
	Trace     io.Writer // session event lines, when set
}

// Server is the simulator's HTTP front door: a small JSON API plus a
// WebSocket that speaks the session protocol.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg Config) *Server {
	if cfg.Language == "" {
		cfg.Language = card.LangEN
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewMemoryStore()
	}
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/decode", s.handleDecode)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// language reads ?lang=, falling back to the server default.
func (s *Server) language(r *http.Request) (card.Language, error) {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		return s.cfg.Language, nil
	}
	return card.ParseLanguage(raw)
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) (*card.DB, bool) {
	lang, err := s.language(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	db, err := s.cfg.Catalogs.Load(r.Context(), lang)
	if err != nil {
		log.Printf("load catalog: %v", err)
		writeError(w, http.StatusBadGateway, "could not load card data")
		return nil, false
	}
	return db, true
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	db, ok := s.catalog(w, r)
	if !ok {
		return
	}
	cards := make([]CardInfo, 0, db.Len())
	for _, c := range db.Cards() {
		cards = append(cards, cardInfo(c))
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DecksFile == "" {
		writeJSON(w, http.StatusOK, []DeckInfo{})
		return
	}
	df, err := deckcode.ParseDeckFile(s.cfg.DecksFile)
	if err != nil {
		log.Printf("read decks file: %v", err)
		writeError(w, http.StatusInternalServerError, "could not read decks file")
		return
	}
	db, ok := s.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, deckInfos(df, db))
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	deck, err := deckcode.Decode(code)
	if err != nil {
		if errors.Is(err, deckcode.ErrEmpty) {
			writeError(w, http.StatusBadRequest, "empty deck code")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	db, ok := s.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, decodedDeck(deck, db))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	tally, err := s.cfg.Stats.Get(r.Context(), r.URL.Query().Get("profile"))
	if err != nil {
		log.Printf("read stats: %v", err)
		writeError(w, http.StatusInternalServerError, "could not read stats")
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

// handleWebSocket gives every socket its own session. Each text frame is a
// ClientMessage; each reply is a ServerMessage.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	lang, err := s.language(r)
	if err != nil {
		lang = s.cfg.Language
	}
	sess := simnet.NewSession(simnet.SessionConfig{
		Catalogs:  s.cfg.Catalogs,
		Stats:     s.cfg.Stats,
		Profile:   r.URL.Query().Get("profile"),
		DecksFile: s.cfg.DecksFile,
		Language:  lang,
		Seed:      s.cfg.Seed,
		Trace:     s.cfg.Trace,
	})

	first := simnet.ServerMessage{Type: simnet.ReplyState}
	if err := sess.Init(ctx); err != nil {
		log.Printf("[Session %s] load catalog failed: %v", sess.ID, err)
		first.Type = simnet.ReplyError
		first.Message = err.Error()
	}
	first.State = sess.Snapshot(ctx)
	if err := writeMessage(ctx, wsConn, first); err != nil {
		log.Printf("WebSocket write error: %v", err)
		return
	}

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		var msg simnet.ClientMessage
		var reply simnet.ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = simnet.ServerMessage{Type: simnet.ReplyError, Message: "malformed message", State: sess.Snapshot(ctx)}
		} else {
			reply = sess.Handle(ctx, msg)
		}
		if err := writeMessage(ctx, wsConn, reply); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

func writeMessage(ctx context.Context, c *websocket.Conn, msg simnet.ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.Write(ctx, websocket.MessageText, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
