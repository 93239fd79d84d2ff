package game

// EventKind classifies entries in the hand event log.
type EventKind string

const (
	EventDeal      EventKind = "deal"
	EventBlindPost EventKind = "blind_post"
	EventAction    EventKind = "action"
	EventStreet    EventKind = "street"
	EventShowdown  EventKind = "showdown"
	EventPotAward  EventKind = "pot_award"
)

// Event is one append-only entry in a hand's observable record. Pot is the
// pot size after the event applied.
type Event struct {
	Kind        EventKind `json:"kind"`
	PlayerID    string    `json:"player_id,omitempty"`
	Action      string    `json:"action,omitempty"`
	Amount      int       `json:"amount,omitempty"`
	Pot         int       `json:"pot"`
	Street      string    `json:"street"`
	Description string    `json:"description"`
}

// DefaultEventCap bounds the full event history; beyond it the oldest
// entries are dropped.
const DefaultEventCap = 1000

// EventLog is the ordered, append-only record of observable events. It is
// partitioned per hand: BeginHand starts a fresh partition while the full
// (capped) history remains available for analysis.
type EventLog struct {
	entries   []Event
	handStart int
	cap       int
}

// NewEventLog creates an event log. maxEntries <= 0 selects DefaultEventCap.
func NewEventLog(maxEntries int) *EventLog {
	if maxEntries <= 0 {
		maxEntries = DefaultEventCap
	}
	return &EventLog{cap: maxEntries}
}

// Append adds an event to the log, dropping the oldest history entries when
// over capacity.
func (l *EventLog) Append(e Event) {
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.cap; over > 0 {
		l.entries = l.entries[over:]
		l.handStart -= over
		if l.handStart < 0 {
			l.handStart = 0
		}
	}
}

// BeginHand closes the current hand partition and starts a new one.
func (l *EventLog) BeginHand() {
	l.handStart = len(l.entries)
}

// HandEvents returns the events of the current hand partition, in append
// order. The returned slice is a copy.
func (l *EventLog) HandEvents() []Event {
	out := make([]Event, len(l.entries)-l.handStart)
	copy(out, l.entries[l.handStart:])
	return out
}

// History returns the full capped event history as a copy.
func (l *EventLog) History() []Event {
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the total number of retained events.
func (l *EventLog) Len() int {
	return len(l.entries)
}
