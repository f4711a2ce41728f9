package hsmx

// DebugMask selects which categories of debug trace an Engine emits.
type DebugMask uint8

const (
	// ShowRun traces event dispatch (Run) and propagation up the parent chain.
	ShowRun DebugMask = 1 << iota
	// ShowTran traces transition headers (Tran's source -> target).
	ShowTran
	// ShowIntact traces per-step ENTRY/EXIT/INIT delivery during a transition.
	ShowIntact
	// ShowAll enables every category.
	ShowAll = ShowRun | ShowTran | ShowIntact
)

func (m DebugMask) has(bit DebugMask) bool {
	return m&bit != 0
}

// effectiveMask returns the one-shot override if set, else the persistent mask.
func (e *Engine) effectiveMask() DebugMask {
	if e.debugOverride != nil {
		return *e.debugOverride
	}
	return e.debugMask
}
