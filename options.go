package hsmx

import "github.com/hashicorp/go-hclog"

// Option applies configuration to an Engine at construction time.
type Option func(*Engine)

// WithLogger configures the Engine's debug logger. Defaults to a null
// logger, so an Engine that never calls SetDebug pays nothing.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrefix sets the debug-line prefix (e.g. "[camera] "), matching the
// source's HSM_SET_PREFIX.
func WithPrefix(prefix string) Option {
	return func(e *Engine) {
		e.prefix = prefix
	}
}

// WithDebug sets the persistent debug mask at construction time, equivalent
// to calling SetDebug immediately after NewEngine.
func WithDebug(mask DebugMask) Option {
	return func(e *Engine) {
		e.debugMask = mask
	}
}
