// Package lexer tokenizes a PlantUML state-diagram source into an ordered
// stream of typed tokens, ported from the reUmlList alternation table in
// the original uml2hsm.py (see original_source/uml2hsm.py). Go's regexp
// package, like Python's re, prefers the leftmost match and, among ties,
// the earliest alternative — so a single combined alternation reproduces
// the same token-priority rules as the Python original. Each named group
// wraps exactly one alternative's own unnamed capturing submatch groups,
// and the offset of that wrapper's own numbered group is recorded
// so the unnamed submatches that follow it can be read positionally —
// exactly the `grpIdx+1`, `grpIdx+2` arithmetic the Python source uses via
// groupindex/lastgroup.
package lexer

import (
	"fmt"
	"regexp"
)

// Kind identifies one of the seven token kinds the spec's lexer recognizes.
type Kind int

const (
	NAME Kind = iota
	INIT
	EVENT
	TRAN
	NEST
	UNNEST
	NOTE
)

func (k Kind) String() string {
	switch k {
	case NAME:
		return "NAME"
	case INIT:
		return "INIT"
	case EVENT:
		return "EVENT"
	case TRAN:
		return "TRAN"
	case NEST:
		return "NEST"
	case UNNEST:
		return "UNNEST"
	case NOTE:
		return "NOTE"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexed fragment, in source order. Groups holds the kind's
// submatches (see each field's doc below); unset optional groups are "".
type Token struct {
	Kind Kind
	// Groups layout per Kind:
	//   NAME:   [name]
	//   INIT:   [state, guard]
	//   EVENT:  [state, evtact]
	//   TRAN:   [src, dst, evtact]
	//   NEST:   [state]
	//   UNNEST: []
	//   NOTE:   [pos, body]  (pos is "" for the anchorless/labelled forms)
	Groups []string
	Offset int // byte offset into the HSM body where the match begins
}

// Block is one @startuml ... @enduml document found in a source file; Image
// is the optional image-name token following @startuml (e.g. "camera.png").
type Block struct {
	Image  string
	Tokens []Token
	// Warnings collects fragments the lexer could not classify, with their
	// byte offsets, matching the spec's ParseWarning error kind.
	Warnings []Warning
}

// Warning is a ParseWarning: an unrecognized fragment, reported with its
// source offset so parsing can continue.
type Warning struct {
	Offset  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("offset %d: %s", w.Offset, w.Message)
}

var blockPattern = regexp.MustCompile(`(?s)@startuml[ \t]*(\S*)(.*?)@enduml`)

// named-group wrapper per alternative, each wrapping the exact submatch
// structure of the corresponding pattern in Uml2Hsm.reUmlList.
const (
	reName   = `(?P<NAME>(?im)^\s*title\s+(\w+)\s*$)`
	reInit   = `(?P<INIT>\[\s*\*\s*\]\s*[-]+(?:\w*[-]+)?>\s*(\w+)(?:\s*:\s*(.*))?)`
	reEvent  = `(?P<EVENT>(?im)^\s*state\s+(\w+)\s*:\s*(.*)$)`
	reTran   = `(?P<TRAN>(?m)(\w+)\s*[-]+(?:\w*[-]+)?>\s*(\w+)\s*:\s*(.*?)$)`
	reNest   = `(?P<NEST>(?i)state\s+(\w+)\s+\{)`
	reUnnest = `(?P<UNNEST>\})`
	reNote1  = `(?P<NOTE1>(?im)^\s*note(.*?)\s*:\s*(.*)$)`
	reNote2  = `(?P<NOTE2>note(.*)((?:\n.+)+)\s*end note)`
	reNote3  = `(?P<NOTE3>(?im)^\s*note\s+"(.*)"\s+as\s+(\w*)\s*$)`
)

var tokenPattern = regexp.MustCompile(
	reName + `|` + reInit + `|` + reEvent + `|` + reTran + `|` +
		reNest + `|` + reUnnest + `|` + reNote1 + `|` + reNote2 + `|` + reNote3)

var groupIndex = buildGroupIndex()

func buildGroupIndex() map[string]int {
	idx := make(map[string]int, 9)
	for i, name := range tokenPattern.SubexpNames() {
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}

// Tokenize scans src for @startuml/@enduml blocks and lexes the body of
// each into an ordered token stream. Malformed fragments between
// recognized tokens are skipped and reported as Warnings; the lexer never
// stops on them (it is single-pass and non-backtracking at the token
// level).
func Tokenize(src string) []Block {
	var blocks []Block
	for _, m := range blockPattern.FindAllStringSubmatchIndex(src, -1) {
		image := src[m[2]:m[3]]
		body := src[m[4]:m[5]]
		blocks = append(blocks, tokenizeBody(image, body))
	}
	return blocks
}

func tokenizeBody(image, body string) Block {
	b := Block{Image: image}
	pos := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(body, -1) {
		start, end := m[0], m[1]
		if start > pos {
			gap := body[pos:start]
			if hasNonSpace(gap) {
				b.Warnings = append(b.Warnings, Warning{
					Offset:  pos,
					Message: "unrecognized fragment: " + truncate(gap, 60),
				})
			}
		}
		tok, ok := classify(body, m)
		if ok {
			tok.Offset = start
			b.Tokens = append(b.Tokens, tok)
		} else {
			b.Warnings = append(b.Warnings, Warning{
				Offset:  start,
				Message: "matched fragment of unknown kind: " + truncate(body[start:end], 60),
			})
		}
		pos = end
	}
	return b
}

// classify determines which alternative matched by checking, for each
// Kind's wrapper group, whether its span is present (start index != -1),
// then reads the kind's own submatches at groupIndex[wrapper]+1, +2, ...
// — the same positional arithmetic Uml2Hsm._process uses via
// `mo.group(grpIdx + 1)`.
func classify(body string, m []int) (Token, bool) {
	group := func(name string) (string, bool) {
		i := groupIndex[name]
		s, e := m[2*i], m[2*i+1]
		if s < 0 {
			return "", false
		}
		return body[s:e], true
	}
	sub := func(wrapper string, n int) string {
		i := groupIndex[wrapper] + n
		s, e := m[2*i], m[2*i+1]
		if s < 0 {
			return ""
		}
		return body[s:e]
	}

	if _, ok := group("NAME"); ok {
		return Token{Kind: NAME, Groups: []string{sub("NAME", 1)}}, true
	}
	if _, ok := group("INIT"); ok {
		return Token{Kind: INIT, Groups: []string{sub("INIT", 1), sub("INIT", 2)}}, true
	}
	if _, ok := group("EVENT"); ok {
		return Token{Kind: EVENT, Groups: []string{sub("EVENT", 1), sub("EVENT", 2)}}, true
	}
	if _, ok := group("TRAN"); ok {
		return Token{Kind: TRAN, Groups: []string{sub("TRAN", 1), sub("TRAN", 2), sub("TRAN", 3)}}, true
	}
	if _, ok := group("NEST"); ok {
		return Token{Kind: NEST, Groups: []string{sub("NEST", 1)}}, true
	}
	if _, ok := group("UNNEST"); ok {
		return Token{Kind: UNNEST}, true
	}
	if _, ok := group("NOTE1"); ok {
		return Token{Kind: NOTE, Groups: []string{sub("NOTE1", 1), sub("NOTE1", 2)}}, true
	}
	if _, ok := group("NOTE2"); ok {
		return Token{Kind: NOTE, Groups: []string{sub("NOTE2", 1), sub("NOTE2", 2)}}, true
	}
	if _, ok := group("NOTE3"); ok {
		// NOTE3 has no position; body is group 1, label (unused) is group 2.
		return Token{Kind: NOTE, Groups: []string{"", sub("NOTE3", 1)}}, true
	}
	return Token{}, false
}

func hasNonSpace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
