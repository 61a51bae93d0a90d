package log

// EventType enumerates all simulator log entries.
type EventType int

const (
	EventStart EventType = iota
	EventMulligan
	EventNewTurn
	EventDraw
	EventDrawType
	EventPlay
	EventShuffle
	EventSwap
	EventDiscover
	EventDiscoverType
	EventDiscoverCopy
	EventDredge
	EventFracking
	EventWaveshape
	EventPickTwo
	EventPickRemaining
	EventDiscard
	EventDestroy
	EventSearch
	EventSink
)

func (e EventType) String() string {
	switch e {
	case EventStart:
		return "Start"
	case EventMulligan:
		return "Mulligan"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventDrawType:
		return "DrawType"
	case EventPlay:
		return "Play"
	case EventShuffle:
		return "Shuffle"
	case EventSwap:
		return "Swap"
	case EventDiscover:
		return "Discover"
	case EventDiscoverType:
		return "DiscoverType"
	case EventDiscoverCopy:
		return "DiscoverCopy"
	case EventDredge:
		return "Dredge"
	case EventFracking:
		return "Fracking"
	case EventWaveshape:
		return "Waveshape"
	case EventPickTwo:
		return "PickTwo"
	case EventPickRemaining:
		return "PickRemaining"
	case EventDiscard:
		return "Discard"
	case EventDestroy:
		return "Destroy"
	case EventSearch:
		return "Search"
	case EventSink:
		return "Sink"
	default:
		return "Unknown"
	}
}

// GameEvent is a single log entry. It is a plain value so a copied slice of
// events is independent of the original.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn counter when the entry was written
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // localized human-readable line
}
