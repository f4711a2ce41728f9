package emitter

import (
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/comalice/hsmx/internal/model"
)

const (
	tabSize        = 4
	userText       = "==> YOUR.CHANGES.GO.HERE <=="
	evt2StrFunc    = "HSM_Evt2Str"
	reservedNull   = "null"
	reservedInit   = "init"
	reservedEntry  = "entry"
	reservedExit   = "exit"
)

// reservedEventMap substitutes PlantUML's reserved pseudo-event names with
// the HSM runtime's own sentinel identifiers, mirroring _genHsmC's
// reservedEventMap.
var reservedEventMap = map[string]string{
	reservedNull:  "HSME_NULL",
	reservedInit:  "HSME_INIT",
	reservedEntry: "HSME_ENTRY",
	reservedExit:  "HSME_EXIT",
}

// cEmitter generates a C header/source pair for an Hsm, a direct port of
// Uml2Hsm._genHsmC.
type cEmitter struct{}

// w is a small io.Writer wrapper that remembers the first write error so
// the generator body can read like the Python original's unchecked
// out.write calls while still surfacing failures.
type w struct {
	out io.Writer
	err error
}

func (b *w) f(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.out, format, args...)
}

func indent(n int) string { return strings.Repeat(" ", tabSize*n) }

func stateObj(hsmName, state string) string {
	return fmt.Sprintf("%s_State%s", hsmName, state)
}

func (cEmitter) Emit(hsm *model.Hsm, out io.Writer) error {
	b := &w{out: out}

	eventSet := nonReservedEvents(hsm.Events)

	b.f("//----The following belongs to %s.h----\n", hsm.Name)
	b.f("#include \"hsm.h\"\n\n")

	b.f("// %s HSM Events\n", hsm.Name)
	maxlen := 0
	for _, ev := range eventSet {
		if len(ev) > maxlen {
			maxlen = len(ev)
		}
	}
	for i, ev := range eventSet {
		b.f("#define %-*s (%d)\n", maxlen+tabSize, ev, i+1)
	}
	b.f("\n")

	b.f("// Definition of %s class\n", hsm.Name)
	b.f("typedef struct\n{\n")
	b.f("%s// Parent  NOTE: HSM parent must be defined first\n", indent(1))
	b.f("%sHSM parent;\n\n", indent(1))
	b.f("%s// Child members\n", indent(1))
	b.f("%s// %s\n", indent(1), userText)
	b.f("} %s_t;\n\n", hsm.Name)

	b.f("//----The following belongs to %s.c----\n", hsm.Name)
	for _, line := range machineNotes(hsm, "include") {
		b.f("%s\n", line)
	}
	b.f("\n")
	for _, line := range machineNotes(hsm, "code") {
		b.f("%s\n", line)
	}
	b.f("\n")

	b.f("// %s States\n", hsm.Name)
	for pair := hsm.States.Oldest(); pair != nil; pair = pair.Next() {
		b.f("HSM_STATE %s;\n", stateObj(hsm.Name, pair.Key))
	}
	b.f("\n")

	b.f("// %s State Handlers\n", hsm.Name)
	for pair := hsm.States.Oldest(); pair != nil; pair = pair.Next() {
		name, state := pair.Key, pair.Value
		b.f("HSM_EVENT %s_Hndlr(HSM *This, HSM_EVENT event, void *param)\n{\n", stateObj(hsm.Name, name))
		b.f("%s%s_t *p%s = (%s_t *)This;\n", indent(1), hsm.Name, hsm.Name, hsm.Name)
		for _, line := range hsm.NotesFor(name, "comment") {
			b.f("%s// %s\n", indent(1), line)
		}
		for _, line := range hsm.NotesFor(name, "code") {
			b.f("%s%s\n", indent(1), line)
		}

		b.f("%sswitch (event)\n%s{\n", indent(1), indent(1))
		for evPair := state.Events.Oldest(); evPair != nil; evPair = evPair.Next() {
			event, arms := evPair.Key, evPair.Value
			wireName := event
			if mapped, ok := reservedEventMap[event]; ok {
				wireName = mapped
			}
			b.f("%scase %s:\n", indent(1), wireName)

			guards := orderedGuardsDefaultLast(arms)
			guardCnt := len(guards)
			for idx, g := range guards {
				arm, _ := arms.Get(g)
				indentCnt := 2
				if g != "" {
					if idx == 0 {
						b.f("%sif (%s)\n", indent(2), g)
					} else {
						b.f("%selse if (%s)\n", indent(2), g)
					}
				} else if guardCnt > 1 {
					b.f("%selse\n", indent(2))
				}
				if g != "" || guardCnt > 1 {
					b.f("%s{\n", indent(2))
					indentCnt = 3
				}
				if arm.Action != "" {
					for _, act := range splitActions(arm.Action) {
						if act != "" {
							b.f("%s%s\n", indent(indentCnt), act)
						}
					}
				}
				if arm.Tran != "" {
					b.f("%sHSM_Tran(This, &%s, 0, NULL);\n", indent(indentCnt), stateObj(hsm.Name, arm.Tran))
				}
				if g != "" || guardCnt > 1 {
					b.f("%s}\n", indent(2))
				}
			}
			b.f("%sreturn 0;\n\n", indent(2))
		}
		b.f("%s}\n", indent(1))
		b.f("%sreturn event;\n}\n\n", indent(1))
	}

	b.f("void %s_Init(%s_t *This, char *name)\n{\n", hsm.Name, hsm.Name)
	b.f("%s// Step 1: Create the HSM States\n", indent(1))
	for pair := hsm.States.Oldest(); pair != nil; pair = pair.Next() {
		name, state := pair.Key, pair.Value
		obj := stateObj(hsm.Name, name)
		parent := "NULL"
		if state.Parent != "" {
			parent = "&" + stateObj(hsm.Name, state.Parent)
		}
		b.f("%sHSM_STATE_Create(&%s, \"%s\", %s_Hndlr, %s);\n", indent(1), obj, name, obj, parent)
	}
	b.f("\n%s// Step 2: Initiailize the HSM and starting state\n", indent(1))
	b.f("%sHSM_Create((HSM *)This, name, &%s);\n\n", indent(1), stateObj(hsm.Name, hsm.Init))
	b.f("%s// Step 3: [Optional] Enable HSM debug\n", indent(1))
	b.f("%sHSM_SET_PREFIX((HSM *)This, \"[%s] \");\n", indent(1), hsm.Name)
	b.f("%sHSM_SET_DEBUG((HSM *)This, HSM_SHOW_ALL);\n\n", indent(1))
	b.f("%s// Step 4: %s object initialization\n", indent(1), hsm.Name)
	b.f("%s// %s\n}\n\n", indent(1), userText)

	b.f("void %s_Run(%s_t *This, HSM_EVENT event, void *param)\n{\n", hsm.Name, hsm.Name)
	b.f("%s// Uncomment below to suppress debug for a specific event (e.g. periodic timer event)\n", indent(1))
	b.f("%s// if (event == <NAME.OF.EVENT.YOU.WANT.TO.SUPPRESS>)\n", indent(1))
	b.f("%s//%sHSM_SUPPRESS_DEBUG((HSM *)This, HSM_SHOW_ALL);\n\n", indent(1), indent(1))
	b.f("%s// Invoke HSM\n", indent(1))
	b.f("%sHSM_Run((HSM *)This, event, param);\n}\n\n", indent(1))

	b.f("const char *%s(uint32_t event)\n{\n", evt2StrFunc)
	b.f("%sswitch (event)\n%s{\n", indent(1), indent(1))
	for _, ev := range eventSet {
		b.f("%scase %s:\n", indent(1), ev)
		b.f("%sreturn \"%s\";\n", indent(2), ev)
	}
	b.f("%s}\n", indent(1))
	b.f("%sreturn \"Undefined\";\n}\n\n", indent(1))

	for _, line := range machineNotes(hsm, "test") {
		b.f("%s\n", line)
	}
	b.f("\n")

	return b.err
}

// machineNotes returns the notes attached to the machine itself: notes with
// no resolved position (stored under "") followed by notes anchored to the
// HSM's own name.
func machineNotes(hsm *model.Hsm, stereotype string) []string {
	return append(hsm.NotesFor("", stereotype), hsm.NotesFor(hsm.Name, stereotype)...)
}

// nonReservedEvents filters out the four pseudo-events the HSM runtime
// handles directly, preserving first-seen source order; Uml2Hsm computed
// this as an unordered Python set, which made generated #defines
// non-deterministic across runs — keeping source order here is a
// deliberate fix, not a behavior this port tries to reproduce.
func nonReservedEvents(events []string) []string {
	var out []string
	for _, e := range events {
		if _, reserved := reservedEventMap[e]; reserved {
			continue
		}
		out = append(out, e)
	}
	return out
}

// orderedGuardsDefaultLast returns arms' guard keys in insertion order but
// with the unguarded "" arm moved last, so it can serve as the switch's
// final `else` — mirroring _genHsmC's actDict.pop(None)/actDict[None]=val
// reordering trick.
func orderedGuardsDefaultLast(arms *orderedmap.OrderedMap[string, model.Arm]) []string {
	var guards []string
	hasDefault := false
	for pair := arms.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			hasDefault = true
			continue
		}
		guards = append(guards, pair.Key)
	}
	if hasDefault {
		guards = append(guards, "")
	}
	return guards
}

func splitActions(action string) []string {
	parts := strings.Split(action, `\n`)
	for i, p := range parts {
		parts[i] = strings.TrimLeft(p, " ")
	}
	return parts
}
