package net

import "github.com/peterkuimelis/mullsim/internal/stats"

// Message types for the JSON protocol. The same envelopes travel over TCP
// (one JSON value per line) and over the web server's WebSocket.

// Client intents.
const (
	MsgLoad       = "load"
	MsgStart      = "start"
	MsgToggle     = "toggle"
	MsgConfirm    = "confirm"
	MsgDraw       = "draw"
	MsgDrawType   = "draw_type"
	MsgEndTurn    = "end_turn"
	MsgPlay       = "play"
	MsgShuffle    = "shuffle"
	MsgSwap       = "swap"
	MsgDiscard    = "discard"
	MsgDestroy    = "destroy"
	MsgSearch     = "search"
	MsgSink       = "sink"
	MsgUndo       = "undo"
	MsgOpen       = "open"
	MsgResolve    = "resolve"
	MsgCancel     = "cancel"
	MsgLanguage   = "language"
	MsgSuccess    = "success"
	MsgTotal      = "total"
	MsgResetStats = "reset_stats"
	MsgGetState   = "state"
)

// Server replies.
const (
	ReplyState  = "state"
	ReplyNotice = "notice"
	ReplyError  = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages. Every
// reply carries the current state; notices and errors add a message.
type ServerMessage struct {
	Type    string     `json:"type"`
	State   *StateView `json:"state,omitempty"`
	Message string     `json:"message,omitempty"`
}

// StateView is everything the presentation needs to draw the simulator.
type StateView struct {
	Session      string           `json:"session"`
	Ready        bool             `json:"ready"`
	Language     string           `json:"language"`
	Phase        string           `json:"phase"`
	TurnOrder    string           `json:"turn_order"`
	Turn         int              `json:"turn"`
	ManaSpent    int              `json:"mana_spent"`
	ManaThisTurn int              `json:"mana_this_turn"`
	TotalMana    int              `json:"total_mana"`
	DeckSize     int              `json:"deck_size"` // loaded deck list
	Hand         []HandCardView   `json:"hand"`
	Deck         []CardView       `json:"deck"`
	Grouped      []DeckEntryView  `json:"grouped"`
	Logs         []LogView        `json:"logs"`
	Interaction  *InteractionView `json:"interaction,omitempty"`
	CanUndo      bool             `json:"can_undo"`
	Stats        stats.Tally      `json:"stats"`
}

type CardView struct {
	DbfID     int    `json:"dbf_id"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	Type      string `json:"type,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	CardClass string `json:"card_class,omitempty"`
	Text      string `json:"text,omitempty"`
}

type HandCardView struct {
	Index    int      `json:"index"`
	ID       int      `json:"id"`
	Card     CardView `json:"card"`
	Coin     bool     `json:"coin,omitempty"`
	Selected bool     `json:"selected,omitempty"`
}

type DeckEntryView struct {
	Card  CardView `json:"card"`
	Count int      `json:"count"`
}

type LogView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// InteractionView describes an open selection modal.
type InteractionView struct {
	Kind        string       `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Options     []OptionView `json:"options"`
	Actions     []ActionView `json:"actions"`
}

type OptionView struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Card        CardView `json:"card"`
	SourceIndex int      `json:"source_index"`
}

type ActionView struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Style string `json:"style,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages. Indices
// are 0-based.
type ClientMessage struct {
	Type string `json:"type"`

	// For "load": a deck code, or a 1-indexed entry of the decks file.
	Code       string `json:"code,omitempty"`
	DeckNumber int    `json:"deck_number,omitempty"`

	// For "start"
	Turn string `json:"turn,omitempty"`

	// For "toggle", "play", "discard", "sink", "success"
	Index int `json:"index,omitempty"`

	// For "confirm". Omitted means the toggled selection.
	Indices []int `json:"indices,omitempty"`

	// For "destroy", "search"
	DbfID int `json:"dbf_id,omitempty"`

	// For "draw_type" and as the Discover filter for "open"
	CardType string `json:"card_type,omitempty"`

	// For "open"
	Strategy string `json:"strategy,omitempty"`

	// For "resolve". Action defaults to PICK.
	Option int    `json:"option,omitempty"`
	Action string `json:"action,omitempty"`

	// For "language"
	Language string `json:"language,omitempty"`

	// For "success", "total"
	Value int `json:"value,omitempty"`
}
