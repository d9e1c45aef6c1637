package eval

import "github.com/renc-lang/rcore/internal/value"

// Thrown is the non-local-exit sentinel (spec.md §4.5/§7): a labeled value
// unwinding the call stack through the ordinary error-return channel rather
// than a distinct control path. Grounded on the teacher's return_signal.go,
// which used a *comparable* sentinel error for RETURN/BREAK/CONTINUE;
// generalized here to carry an arbitrary label cell so user-level CATCH/
// THROW (not just the built-in loop signals) can share one mechanism.
type Thrown struct {
	Label value.Cell
	Value value.Cell
}

func (t *Thrown) Error() string {
	return "thrown value escaped to top level: " + value.Mold(t.Value)
}

// NewThrow wraps value under label. THROW is its only caller; no
// BREAK/CONTINUE/RETURN natives exist in this module.
func NewThrow(label, val value.Cell) *Thrown {
	return &Thrown{Label: label, Value: val}
}

// AsThrown reports whether err is a *Thrown, unwrapping it for CATCH-style
// natives.
func AsThrown(err error) (*Thrown, bool) {
	t, ok := err.(*Thrown)
	return t, ok
}

// Reserved throw labels for loop-control words, as well-known issue!
// values rather than magic strings. Nothing in this module throws or
// catches under them.
var (
	LabelBreak    = value.Issue("break")
	LabelContinue = value.Issue("continue")
	LabelReturn   = value.Issue("return")
)
