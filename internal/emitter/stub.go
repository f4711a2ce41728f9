package emitter

import (
	"io"

	"github.com/comalice/hsmx/internal/model"
)

// stub is a registered but unimplemented target language — a direct
// counterpart to _genHsmCpp, _genHsmPy and _genPlantUML's `pass` bodies in
// the original generator. It is kept registered (rather than omitted) so
// --lang reports "not yet implemented" instead of "unknown language" for
// these three, matching the original tool's set of four advertised
// targets.
type stub struct {
	lang string
}

func (s stub) Emit(_ *model.Hsm, _ io.Writer) error {
	return &NotImplementedError{Lang: s.lang}
}

// NotImplementedError reports a registered but not-yet-implemented target
// language.
type NotImplementedError struct {
	Lang string
}

func (e *NotImplementedError) Error() string {
	return "emitter: target language " + e.Lang + " is registered but not implemented"
}
