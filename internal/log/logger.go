package log

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/mullsim/internal/card"
)

// EventLogger is the interface for logging simulator events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	Prefix string // written before every line
	w      io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, l.Prefix+FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d | %s", e.Turn, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewStartEvent(lang card.Language, second bool) GameEvent {
	key := MsgStartFirst
	if second {
		key = MsgStartSecond
	}
	return GameEvent{
		Type:    EventStart,
		Details: Text(lang, key),
	}
}

func NewMulliganEvent(lang card.Language, turn, kept, swapped int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventMulligan,
		Details: Render(lang, MsgMulliganDone, "kept", strconv.Itoa(kept), "swapped", strconv.Itoa(swapped)),
	}
}

// NewTurnEvent is the combined turn-start entry. drawn is empty when the deck
// was empty and nothing was drawn.
func NewTurnEvent(lang card.Language, turn int, drawn string) GameEvent {
	details := Render(lang, MsgStartTurn, "turn", strconv.Itoa(turn))
	if drawn != "" {
		details += " " + Render(lang, MsgDraw, "card", drawn)
	}
	return GameEvent{
		Turn:    turn,
		Type:    EventNewTurn,
		Card:    drawn,
		Details: details,
	}
}

func NewDrawEvent(lang card.Language, turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDraw,
		Card:    cardName,
		Details: Render(lang, MsgDraw, "card", cardName),
	}
}

func NewDrawTypeEvent(lang card.Language, turn int, cardType, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDrawType,
		Card:    cardName,
		Details: Render(lang, MsgDrawType, "type", TypeName(lang, cardType), "card", cardName),
	}
}

func NewPlayEvent(lang card.Language, turn int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventPlay,
		Card:    cardName,
		Details: Render(lang, MsgPlay, "card", cardName, "cost", strconv.Itoa(cost)),
	}
}

func NewShuffleEvent(lang card.Language, turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventShuffle,
		Details: Text(lang, MsgShuffle),
	}
}

func NewSwapEvent(lang card.Language, turn, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventSwap,
		Details: Render(lang, MsgSwap, "count", strconv.Itoa(count)),
	}
}

func NewDiscardEvent(lang card.Language, turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDiscard,
		Card:    cardName,
		Details: Render(lang, MsgDiscard, "card", cardName),
	}
}

func NewDestroyEvent(lang card.Language, turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDestroy,
		Card:    cardName,
		Details: Render(lang, MsgDestroy, "card", cardName),
	}
}

func NewSearchEvent(lang card.Language, turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventSearch,
		Card:    cardName,
		Details: Render(lang, MsgSearch, "card", cardName),
	}
}

func NewSinkEvent(lang card.Language, turn int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventSink,
		Card:    cardName,
		Details: Render(lang, MsgSink, "card", cardName),
	}
}

// NewInteractionEvent records a resolved selection. cardType is only used by
// templates with a {type} placeholder.
func NewInteractionEvent(lang card.Language, turn int, t EventType, key MsgKey, cardName, cardType string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    t,
		Card:    cardName,
		Details: Render(lang, key, "card", cardName, "type", TypeName(lang, cardType)),
	}
}
