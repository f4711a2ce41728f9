package hsmx

import "strconv"

// Event is a tagged value identifying a dispatched or pseudo event. User
// events are the non-negative integers; the three reserved pseudo-events
// below are negative sentinels so generated event enumerations (which the
// emitter numbers starting at 1, in source order) can never collide with
// them.
//
// Pseudo-events are never passed to Run: they arise only from Tran, per the
// transition algorithm in Engine.Tran.
type Event int

const (
	// EventInit is delivered to a state's handler once a transition into it
	// has committed. A handler that calls Tran in response drives the
	// machine into a default child; a handler that ignores it leaves the
	// machine at that state.
	EventInit Event = -(iota + 1)
	// EventEntry is delivered top-down, ancestor-first, while entering a
	// chain of states during a transition.
	EventEntry
	// EventExit is delivered bottom-up, deepest-first, while exiting a
	// chain of states during a transition.
	EventExit
)

// String renders the reserved pseudo-events for debug output; user events
// print as their integer value unless the generated Evt2Str helper (see
// internal/emitter) is used instead.
func (e Event) String() string {
	switch e {
	case EventInit:
		return "INIT"
	case EventEntry:
		return "ENTRY"
	case EventExit:
		return "EXIT"
	default:
		return strconv.Itoa(int(e))
	}
}

// Handler implements the behavior of one state. It is invoked with the
// dispatched event and an opaque param carrier.
//
// Returning nil means the event was consumed: dispatch halts. Returning a
// non-nil *Event (conventionally &event, the same event that was passed in)
// means the event is unhandled and should be re-dispatched to the parent
// state's handler. ENTRY, EXIT and INIT handlers' return values are always
// ignored by the engine, so a handler may return nil unconditionally for
// those three.
type Handler func(eng *Engine, event Event, param any) *Event

// Action runs during a transition, strictly between the last EXIT and the
// first ENTRY.
type Action func(eng *Engine, param any)

// Unhandled is a convenience a Handler can use to report that it did not
// consume event: `return hsmx.Unhandled(event)`.
func Unhandled(event Event) *Event {
	return &event
}
