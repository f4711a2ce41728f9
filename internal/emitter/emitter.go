// Package emitter turns a parsed model.Hsm into target-language source,
// mirroring Uml2Hsm.supportedLang's dispatch table and its per-language
// _genHsm* methods (see original_source/uml2hsm.py). Only the C emitter is
// fully implemented, matching _genHsmC; the rest are registered stubs,
// matching the Python source's `pass` bodies for _genHsmCpp, _genHsmPy and
// _genPlantUML.
package emitter

import (
	"io"

	"github.com/comalice/hsmx/internal/model"
)

// Emitter renders one Hsm document as target-language source onto out.
type Emitter interface {
	Emit(hsm *model.Hsm, out io.Writer) error
}

// Registry maps a language name (as accepted by the --lang CLI flag) to its
// Emitter, mirroring Uml2Hsm.supportedLang.
type Registry map[string]Emitter

// NewRegistry returns the registry of every language the generator knows
// about, whether fully implemented or a documented stub.
func NewRegistry() Registry {
	return Registry{
		"c":      cEmitter{},
		"c++":    stub{lang: "c++"},
		"python": stub{lang: "python"},
		"puml":   stub{lang: "puml"},
	}
}

// Languages returns the registry's keys, for CLI usage/help text.
func (r Registry) Languages() []string {
	langs := make([]string, 0, len(r))
	for lang := range r {
		langs = append(langs, lang)
	}
	return langs
}
