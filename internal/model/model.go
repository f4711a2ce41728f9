// Package model holds the intermediate representation the builder
// assembles from a lexer token stream, and that emitters consume to
// produce target-language source. It is a direct port of the OrderedDict
// structures Uml2Hsm accumulates into self.curHsm (see
// original_source/uml2hsm.py), using github.com/wk8/go-ordered-map/v2 in
// place of Python's OrderedDict so iteration order — and therefore
// generated code order — matches source order deterministically.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Arm is one guarded branch of an event's handling in a state: Action is
// the (possibly multi-statement, "\n"-joined) code fragment to run, and
// Tran is the destination state name, or "" if the arm has no transition.
type Arm struct {
	Action string
	Tran   string
}

// StateEntry is one state in the model: its parent (by name, "" for a
// top-level state) and its ordered map of event name -> guard -> Arm. The
// guard key "" is the unguarded/default arm for that event, per
// _addEvent's "Key None is the default action" convention.
type StateEntry struct {
	Parent string
	Events *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, Arm]]
}

// NewStateEntry returns a StateEntry with an initialized, empty Events map.
func NewStateEntry(parent string) *StateEntry {
	return &StateEntry{
		Parent: parent,
		Events: orderedmap.New[string, *orderedmap.OrderedMap[string, Arm]](),
	}
}

// Note is one note body attached by position/state name, tagged with its
// stereotype (e.g. "include", "code", "test", "comment" — "comment" is the
// default when no <<stereotype>> is present). Body is pre-split into lines
// with common leading indentation stripped, mirroring _addNote.
type Note struct {
	Type string
	Body []string
}

// Hsm is one parsed @startuml ... @enduml document.
type Hsm struct {
	Name  string
	Image string
	Init  string // name of the HSM's top-level initial state
	// States preserves declaration order, as Python's OrderedDict did.
	States *orderedmap.OrderedMap[string, *StateEntry]
	// Events lists every distinct event name encountered, in first-seen
	// order, for generating the target language's event enumeration.
	Events []string
	// Notes maps a state/HSM name (or "" when a note has no resolved
	// position) to the notes attached to it, in source order.
	Notes *orderedmap.OrderedMap[string, []Note]
}

// NewHsm returns an Hsm with all ordered maps initialized.
func NewHsm(image string) *Hsm {
	return &Hsm{
		Image:  image,
		States: orderedmap.New[string, *StateEntry](),
		Notes:  orderedmap.New[string, []Note](),
	}
}

// NotesFor returns the notes attached to name with the given stereotype,
// in source order — a port of Uml2Hsm._getNote.
func (h *Hsm) NotesFor(name, stereotype string) []string {
	notes, ok := h.Notes.Get(name)
	if !ok {
		return nil
	}
	var out []string
	for _, n := range notes {
		if n.Type == stereotype {
			out = append(out, n.Body...)
		}
	}
	return out
}
