package morsetree

import (
	"fmt"
	"io"
	"strings"
)

// SetDebugMode enables or disables per-step logging. When enabled, every
// non-idle Advance, each accepted character, Undo and Reset print one line to
// the debug writer (stderr unless SetDebugOutput was called).
func (a *Automaton) SetDebugMode(enabled bool) {
	a.debug = enabled
}

// SetDebugOutput redirects debug lines. A nil writer discards them.
func (a *Automaton) SetDebugOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	a.debugOut = w
}

func (a *Automaton) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.debugOut, "[morsetree] "+format+"\n", args...)
}

// logStep prints a step result. No-op when debug mode is off.
func (a *Automaton) logStep(res StepResult) {
	if !a.debug {
		return
	}
	switch res.Outcome {
	case StepCommitted:
		a.debugf("step: %s sym=%s tip=%d added=%v | segments: %d | tips: %d | pending: %d",
			res.Outcome, res.Symbol, res.Tip, res.Added, len(a.segments), len(a.tips), len(a.symbols))
	case StepRejected:
		a.debugf("step: %s sym=%s tip=%d blocker=%d | tips: %d | pending: %d",
			res.Outcome, res.Symbol, res.Tip, res.Blocker, len(a.tips), len(a.symbols))
	case StepDiscarded:
		a.debugf("step: %s sym=%s | pending: %d", res.Outcome, res.Symbol, len(a.symbols))
	}
}

func symbolString(syms []Symbol) string {
	var b strings.Builder
	b.Grow(len(syms))
	for _, s := range syms {
		b.WriteByte(byte(s))
	}
	return b.String()
}
