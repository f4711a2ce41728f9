package hsmx

import "github.com/hashicorp/go-hclog"

// Engine owns one state tree and the machine's current position in it.
// Engine is not safe for concurrent use; callers must serialize all calls on
// a given instance (see the concurrency model in SPEC_FULL.md §5).
type Engine struct {
	name          string
	root          *State
	current       *State
	lock          bool
	debugMask     DebugMask
	debugOverride *DebugMask
	prefix        string
	logger        hclog.Logger
	owned         map[*State]struct{}
}

// NewEngine constructs an Engine with an internal root state. The root's
// handler always consumes events it receives and logs a "dropped event"
// diagnostic; current() starts at the root until SetInitial is called.
func NewEngine(name string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		logger: hclog.NewNullLogger(),
		owned:  make(map[*State]struct{}),
	}
	root := &State{name: ":root:", level: 0}
	root.handler = e.rootHandler
	e.root = root
	e.current = root
	e.owned[root] = struct{}{}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the engine's internal catch-all root state.
func (e *Engine) Root() *State {
	return e.root
}

func (e *Engine) rootHandler(_ *Engine, event Event, _ any) *Event {
	e.logger.Warn("event dropped, no parent handling",
		"engine", e.name, "event", event.String(), "state", e.current.name)
	return nil
}

// MakeState creates a State owned by e. If parent is nil, e's root is used.
// MakeState returns ErrInvalidParent if parent is non-nil and not a state
// node owned by e.
func (e *Engine) MakeState(name string, handler Handler, parent *State) (*State, error) {
	if parent == nil {
		parent = e.root
	} else if _, ok := e.owned[parent]; !ok {
		return nil, ErrInvalidParent
	}
	s := &State{
		name:    name,
		handler: handler,
		parent:  parent,
		level:   parent.level + 1,
	}
	e.owned[s] = struct{}{}
	return s, nil
}

// SetInitial sets the engine's starting state prior to the first Run. It
// fails with ErrNotAState if s is not a node of e's graph.
func (e *Engine) SetInitial(s *State) error {
	if _, ok := e.owned[s]; !ok {
		e.logger.Error("SetInitial: not a state of this engine", "engine", e.name, "state", s)
		return ErrNotAState
	}
	e.current = s
	return nil
}

// Current returns the engine's current state.
func (e *Engine) Current() *State {
	return e.current
}

// IsIn reports whether s is the current state or any of its ancestors,
// i.e. whether s appears on the parent chain from Current() to the root.
func (e *Engine) IsIn(s *State) bool {
	for cur := e.current; cur != nil; cur = cur.parent {
		if cur == s {
			return true
		}
	}
	return false
}

// SetDebug sets the persistent debug mask.
func (e *Engine) SetDebug(mask DebugMask) {
	e.debugMask = mask
}

// SuppressDebug sets a one-shot mask used for the next Run call only; it is
// cleared automatically once that Run returns.
func (e *Engine) SuppressDebug(mask DebugMask) {
	e.debugOverride = &mask
}

// Run dispatches event to the current state's handler and, while the
// handler reports the event unhandled, to each ancestor in turn until the
// root consumes it. param is passed unchanged along the propagation chain.
//
// Run must not be called from within an ENTRY or EXIT handler. Calling it
// reentrantly from an ordinary user-event handler, after that handler has
// already updated the current state via Tran, is supported; calling it from
// an INIT handler is unnecessary since INIT is not dispatched via Run.
func (e *Engine) Run(event Event, param any) {
	mask := e.effectiveMask()
	state := e.current
	if mask.has(ShowRun) {
		e.logger.Debug(e.prefix+"run", "engine", e.name, "state", state.name, "event", event.String())
	}
	for {
		unhandled := state.handler(e, event, param)
		if unhandled == nil {
			break
		}
		event = *unhandled
		state = state.parent
		if mask.has(ShowRun) {
			e.logger.Debug(e.prefix+"unhandled, propagating", "engine", e.name, "event", event.String(), "state", state.name)
		}
	}
	e.debugOverride = nil
}

// Tran performs the state transition from the current state to next: EXIT
// events fire bottom-up from the current state up to (but not including)
// the least common ancestor (LCA) of current and next, then the optional
// action runs, then ENTRY events fire top-down from (but not including) the
// LCA down to next, then next's handler receives INIT.
//
// Tran is forbidden while the engine is locked (i.e. called from within an
// ENTRY or EXIT handler); such a call is logged and ignored, leaving the
// current state unchanged. Self-transitions (next == Current()) exit and
// enter nothing — the LCA computation collapses to an empty chain on both
// sides — but next still receives INIT.
func (e *Engine) Tran(next *State, param any, action Action) {
	if e.lock {
		e.logger.Error(e.prefix+ErrIllegalTransition.Error(),
			"engine", e.name, "from", e.current.name, "to", next.name)
		return
	}
	e.lock = true

	mask := e.effectiveMask()
	if mask.has(ShowTran) {
		e.logger.Debug(e.prefix+"tran", "engine", e.name, "from", e.current.name, "to", next.name)
	}

	src, dst := e.current, next
	var exitChain, entryChain []*State
	for src.level > dst.level {
		exitChain = append(exitChain, src)
		src = src.parent
	}
	for dst.level > src.level {
		entryChain = append([]*State{dst}, entryChain...)
		dst = dst.parent
	}
	for src != dst {
		exitChain = append(exitChain, src)
		src = src.parent
		entryChain = append([]*State{dst}, entryChain...)
		dst = dst.parent
	}

	for _, s := range exitChain {
		if mask.has(ShowIntact) {
			e.logger.Debug(e.prefix+"exit", "engine", e.name, "state", s.name)
		}
		s.handler(e, EventExit, param)
	}

	if action != nil {
		action(e, param)
	}

	for _, s := range entryChain {
		if mask.has(ShowIntact) {
			e.logger.Debug(e.prefix+"entry", "engine", e.name, "state", s.name)
		}
		s.handler(e, EventEntry, param)
	}

	e.current = next
	e.lock = false

	if mask.has(ShowIntact) {
		e.logger.Debug(e.prefix+"init", "engine", e.name, "state", next.name)
	}
	next.handler(e, EventInit, param)
}
