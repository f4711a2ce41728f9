package hsmx

import "errors"

// Error kinds per the engine's error handling design. These are local
// conditions: the engine degrades to a log plus a no-op and never unwinds
// the caller, preserving the invariant that current() is always valid.
var (
	// ErrInvalidParent is returned by MakeState when parent is non-nil and
	// not a state node owned by the engine doing the creating.
	ErrInvalidParent = errors.New("hsmx: parent is not a state of this engine")

	// ErrNotAState is returned by SetInitial when the given state is not a
	// node of this engine's graph.
	ErrNotAState = errors.New("hsmx: not a state of this engine")

	// ErrIllegalTransition is the condition logged (not returned) when Tran
	// is called while the engine is locked, i.e. from within an ENTRY or
	// EXIT handler.
	ErrIllegalTransition = errors.New("hsmx: illegal call to Tran from ENTRY or EXIT handler")

	// ErrUnsupportedLanguage is fatal to a generator invocation: the
	// requested emitter target has no registered implementation.
	ErrUnsupportedLanguage = errors.New("hsmx: unsupported target language")
)
