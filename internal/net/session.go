package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterkuimelis/mullsim/internal/card"
	"github.com/peterkuimelis/mullsim/internal/deckcode"
	"github.com/peterkuimelis/mullsim/internal/game"
	"github.com/peterkuimelis/mullsim/internal/log"
	"github.com/peterkuimelis/mullsim/internal/stats"
)

// CatalogSource loads a card catalog per language. *card.Loader implements it.
type CatalogSource interface {
	Load(ctx context.Context, lang card.Language) (*card.DB, error)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Catalogs  CatalogSource
	Stats     stats.Store // nil uses a private memory store
	Profile   string      // stats profile
	DecksFile string      // decks.yaml for "load" by number
	Language  card.Language
	Seed      int64
	Logger    log.EventLogger
	Trace     io.Writer // with no Logger, each session writes its events here
}

// Session is one simulator run driven by protocol messages. It owns an
// engine and serializes every intent against it.
type Session struct {
	ID string

	mu      sync.Mutex
	cfg     SessionConfig
	engine  *game.Engine
	catalog *card.DB
	loadErr error // last catalog load failure, nil after a success
	stats   stats.Store
}

// NewSession creates a session whose engine is not ready until Init loads
// the catalog.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Language == "" {
		cfg.Language = card.LangEN
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewMemoryStore()
	}
	id := uuid.NewString()
	if cfg.Logger == nil && cfg.Trace != nil {
		tl := log.NewTextLogger(cfg.Trace)
		tl.Prefix = "[Session " + id[:8] + "] "
		cfg.Logger = tl
	}
	e := game.NewEngine(game.Config{Language: cfg.Language, Logger: cfg.Logger, Seed: cfg.Seed})
	e.SetReady(false)
	return &Session{
		ID:     id,
		cfg:    cfg,
		engine: e,
		stats:  cfg.Stats,
	}
}

// Init loads the catalog for the session language. On failure the session
// stays not ready and a later "language" intent retries.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCatalog(ctx, s.cfg.Language)
}

func (s *Session) loadCatalog(ctx context.Context, lang card.Language) error {
	s.engine.SetReady(false)
	db, err := s.cfg.Catalogs.Load(ctx, lang)
	s.loadErr = err
	if err != nil {
		return err
	}
	s.engine.Relocalize(db, lang)
	s.catalog = db
	s.engine.SetReady(true)
	return nil
}

// Snapshot returns the current state view.
func (s *Session) Snapshot(ctx context.Context) *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(ctx)
}

func (s *Session) view(ctx context.Context) *StateView {
	tally, err := s.stats.Get(ctx, s.cfg.Profile)
	if err != nil {
		stdlog.Printf("[Session %s] read stats failed: %v", s.ID, err)
	}
	return BuildStateView(s.engine, s.ID, tally)
}

// Handle applies one intent and returns the reply. Refused operations come
// back as "notice", malformed intents and load failures as "error"; both
// carry the unchanged state.
func (s *Session) Handle(ctx context.Context, msg ClientMessage) ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.dispatch(ctx, msg)
	reply := ServerMessage{Type: ReplyState, State: s.view(ctx)}
	switch {
	case err == nil:
	case game.IsGuard(err):
		reply.Type = ReplyNotice
		reply.Message = s.describe(err)
	default:
		reply.Type = ReplyError
		reply.Message = s.describe(err)
	}
	return reply
}

func (s *Session) dispatch(ctx context.Context, msg ClientMessage) error {
	e := s.engine
	switch msg.Type {
	case MsgGetState:
		return nil
	case MsgLoad:
		return s.load(msg)
	case MsgStart:
		order, err := game.ParseTurnOrder(strings.ToLower(msg.Turn))
		if err != nil {
			return err
		}
		return e.Start(order)
	case MsgToggle:
		_, err := e.ToggleSelection(msg.Index)
		return err
	case MsgConfirm:
		if err := e.ConfirmMulligan(msg.Indices); err != nil {
			return err
		}
		if _, err := s.stats.IncrementTotal(ctx, s.cfg.Profile); err != nil {
			stdlog.Printf("[Session %s] increment total failed: %v", s.ID, err)
		}
		return nil
	case MsgDraw:
		return e.Draw()
	case MsgDrawType:
		return e.DrawType(strings.ToUpper(msg.CardType))
	case MsgEndTurn:
		return e.EndTurn()
	case MsgPlay:
		return e.Play(msg.Index)
	case MsgShuffle:
		return e.Shuffle()
	case MsgSwap:
		return e.Swap()
	case MsgDiscard:
		return e.Discard(msg.Index)
	case MsgDestroy:
		return e.Destroy(msg.DbfID)
	case MsgSearch:
		return e.Search(msg.DbfID)
	case MsgSink:
		return e.Sink(msg.Index)
	case MsgUndo:
		return e.Undo()
	case MsgOpen:
		st, err := game.NewStrategy(game.Kind(strings.ToLower(msg.Strategy)), strings.ToUpper(msg.CardType))
		if err != nil {
			return err
		}
		_, err = e.Open(st)
		return err
	case MsgResolve:
		act := game.ActionType(strings.ToUpper(msg.Action))
		if act == "" {
			act = game.ActionPick
		}
		return e.Resolve(msg.Option, act)
	case MsgCancel:
		return e.Cancel()
	case MsgLanguage:
		lang, err := card.ParseLanguage(msg.Language)
		if err != nil {
			return err
		}
		return s.loadCatalog(ctx, lang)
	case MsgSuccess:
		_, err := s.stats.SetSuccess(ctx, s.cfg.Profile, msg.Index, msg.Value)
		return err
	case MsgTotal:
		_, err := s.stats.SetTotal(ctx, s.cfg.Profile, msg.Value)
		return err
	case MsgResetStats:
		_, err := s.stats.Reset(ctx, s.cfg.Profile)
		return err
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (s *Session) load(msg ClientMessage) error {
	if !s.engine.Ready() || s.catalog == nil {
		return game.ErrNotReady
	}
	code := msg.Code
	if code == "" && msg.DeckNumber > 0 {
		if s.cfg.DecksFile == "" {
			return fmt.Errorf("no decks file configured")
		}
		entry, err := deckcode.DeckByNumber(s.cfg.DecksFile, msg.DeckNumber)
		if err != nil {
			return err
		}
		code = entry.Code
	}
	deck, err := deckcode.Decode(code)
	if err != nil {
		return err
	}
	s.engine.Load(deck.Expand(s.catalog))
	return nil
}

// describe turns an error into a message in the session language.
func (s *Session) describe(err error) string {
	lang := s.engine.Language()
	var nt *game.NoCardOfTypeError
	switch {
	case errors.As(err, &nt):
		return log.Render(lang, log.MsgNoType, "type", log.TypeName(lang, nt.Type))
	case errors.Is(err, deckcode.ErrEmpty), errors.Is(err, deckcode.ErrMalformed):
		return log.Text(lang, log.MsgInvalidDeck)
	case errors.Is(err, game.ErrNotReady) && (s.catalog == nil || s.loadErr != nil):
		return log.Text(lang, log.MsgDBError)
	}
	return err.Error()
}
