package eval

import "github.com/renc-lang/rcore/internal/value"

// Redo is returned by a Dispatcher that wants the frame re-run against a
// different phase (spec.md §4.5 "redo" signal) -- used by adapted/
// specialized actions that delegate to an underlying phase after
// rewriting some arguments, rather than by anything in internal/native
// today. Kept as its own error type (not folded into Thrown) because a
// redo is resolved entirely within dispatch and must never be observable
// by a CATCH.
type Redo struct {
	Phase *value.Action
}

func (r *Redo) Error() string { return "redo: " + functionDisplayName(r.Phase) }

// runDispatch runs action.Dispatch against fr, following Redo signals
// until the dispatcher returns an ordinary result or error. This is the
// "Dispatcher Bridge" spec.md §4.5 describes: it is the single place that
// interprets what a Dispatcher's return means (a value, a thrown
// non-local exit, or a request to redo against another phase).
func runDispatch(fr value.Frame, action *value.Action, ev value.Evaluator) (value.Cell, error) {
	phase := action
	for {
		result, err := phase.Dispatch(fr, ev)
		if err == nil {
			return result, nil
		}
		if redo, ok := err.(*Redo); ok {
			phase = redo.Phase
			continue
		}
		return value.Void(), err
	}
}
