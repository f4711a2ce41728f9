package model

import (
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/comalice/hsmx/internal/lexer"
)

// Warning is a build-time diagnostic that does not stop parsing, e.g. an
// event fragment that didn't match the expected "event[guard]/action"
// shape.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// eventPattern splits an "event[guard]/action" fragment into its event,
// guard and action parts; ported from Uml2Hsm.pattEvent.
var eventPattern = regexp.MustCompile(`(\w+)(?:\s*\[(.*?)\])?(?:\s*\/\s*(.*))?$`)

// notePosPattern extracts the associated state name from a note's position
// directive, e.g. "top of Off" -> "Off"; ported from _addNote's first
// re.search.
var notePosPattern = regexp.MustCompile(`(\w*)\s+of\s+(\w*)\s*`)

// noteStereotypePattern extracts a "<<stereotype>>" marker from a note
// body; ported from _addNote's second re.search.
var noteStereotypePattern = regexp.MustCompile(`<<(.*)>>`)

// builder accumulates one Hsm document from its token stream, tracking the
// nesting stack of enclosing state names the way Uml2Hsm.parent does.
type builder struct {
	hsm      *Hsm
	parent   []string // parent[len-1] == "" means top level, like Python's [None]
	warnings []Warning
}

// Build turns each lexed block into an Hsm document. It never stops on a
// malformed event fragment — such fragments are reported as warnings and
// skipped, mirroring _addEvent's AttributeError handling.
func Build(blocks []lexer.Block) ([]*Hsm, []Warning) {
	var hsms []*Hsm
	var warnings []Warning
	for _, block := range blocks {
		b := &builder{
			hsm:    NewHsm(block.Image),
			parent: []string{""},
		}
		for _, w := range block.Warnings {
			warnings = append(warnings, Warning{Message: w.String()})
		}
		for _, tok := range block.Tokens {
			b.process(tok)
		}
		warnings = append(warnings, b.warnings...)
		hsms = append(hsms, b.hsm)
	}
	return hsms, warnings
}

func (b *builder) curParent() string {
	return b.parent[len(b.parent)-1]
}

func (b *builder) process(tok lexer.Token) {
	switch tok.Kind {
	case lexer.NAME:
		b.hsm.Name = tok.Groups[0]

	case lexer.INIT:
		state, guard := tok.Groups[0], tok.Groups[1]
		b.addState(state)
		if parent := b.curParent(); parent != "" {
			evtact := "init"
			if guard != "" {
				evtact = "init " + guard
			}
			b.addEvent(parent, evtact, state)
		} else {
			b.hsm.Init = state
		}

	case lexer.EVENT:
		state, evtact := tok.Groups[0], tok.Groups[1]
		b.addState(state)
		b.addEvent(state, evtact, "")

	case lexer.TRAN:
		src, dst, evtact := tok.Groups[0], tok.Groups[1], tok.Groups[2]
		b.addState(src)
		b.addEvent(src, evtact, dst)

	case lexer.NEST:
		state := tok.Groups[0]
		b.addState(state)
		b.parent = append(b.parent, state)

	case lexer.UNNEST:
		if len(b.parent) > 1 {
			b.parent = b.parent[:len(b.parent)-1]
		}

	case lexer.NOTE:
		b.addNote(tok.Groups[1], tok.Groups[0])
	}
}

// addState registers state under the current nesting parent if not already
// present; ported from Uml2Hsm._addState.
func (b *builder) addState(state string) {
	if _, ok := b.hsm.States.Get(state); ok {
		return
	}
	b.hsm.States.Set(state, NewStateEntry(b.curParent()))
}

// addEvent parses "event[guard]/action" and records the arm for state;
// ported from Uml2Hsm._addEvent.
func (b *builder) addEvent(state, evtact, tran string) {
	m := eventPattern.FindStringSubmatch(evtact)
	if m == nil {
		b.warnings = append(b.warnings, Warning{
			Message: fmt.Sprintf("state %q: could not parse event fragment %q", state, evtact),
		})
		return
	}
	event, guard, action := m[1], m[2], m[3]

	entry, ok := b.hsm.States.Get(state)
	if !ok {
		// addState is always called before addEvent by every caller above;
		// this guards against a future caller forgetting to.
		entry = NewStateEntry(b.curParent())
		b.hsm.States.Set(state, entry)
	}

	arms, ok := entry.Events.Get(event)
	if !ok {
		arms = orderedmap.New[string, Arm]()
		entry.Events.Set(event, arms)
	}
	if _, exists := arms.Get(guard); exists {
		b.warnings = append(b.warnings, Warning{
			Message: fmt.Sprintf("event %q[%s] for state %q is being replaced", event, guard, state),
		})
	}
	arms.Set(guard, Arm{Action: action, Tran: tran})

	if !containsString(b.hsm.Events, event) {
		b.hsm.Events = append(b.hsm.Events, event)
	}
}

// addNote resolves a note's stereotype and position, splits its body into
// dedented lines, and appends it to the HSM's note index; ported from
// Uml2Hsm._addNote.
func (b *builder) addNote(body, pos string) {
	ntype := "comment"
	if m := noteStereotypePattern.FindStringSubmatch(body); m != nil {
		ntype = m[1]
		body = strings.Replace(body, "<<"+ntype+">>", "", 1)
	}

	resolvedPos := ""
	if m := notePosPattern.FindStringSubmatch(pos); m != nil {
		resolvedPos = m[2]
	}

	lines := splitNonBlank(body)
	lines = dedent(lines)

	existing, _ := b.hsm.Notes.Get(resolvedPos)
	existing = append(existing, Note{Type: ntype, Body: lines})
	b.hsm.Notes.Set(resolvedPos, existing)
}

func splitNonBlank(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimLeft(line, " ") != "" {
			out = append(out, line)
		}
	}
	return out
}

func dedent(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	indentLen := -1
	for _, line := range lines {
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indentLen == -1 || n < indentLen {
			indentLen = n
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if indentLen <= len(line) {
			out[i] = line[indentLen:]
		} else {
			out[i] = line
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
