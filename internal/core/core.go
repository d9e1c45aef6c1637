// Package core defines a narrow interface over the evaluator for packages
// that want to talk to it without importing internal/eval (internal/debug
// and internal/signals use it). Native dispatchers do not use it: they
// receive the smaller value.Evaluator, and internal/native imports
// internal/eval directly where it needs more. This mirrors the teacher
// (viro-lang-viro), which keeps its own internal/core package.
package core

import "github.com/renc-lang/rcore/internal/value"

// Evaluator is implemented by *eval.Evaluator. internal/debug's
// GetCallStack takes one to read the live call stack.
type Evaluator interface {
	EvalStep(fr Frame) (bool, error)
	EvalToEnd(vals []value.Cell, specifier value.Context) (value.Cell, error)
	Lookup(symbol string, specifier value.Context) (value.Cell, bool)
	Callstack() []string
	Signals() Signaler
}

// Signaler exposes the cooperative signal-check counter (spec.md §5) to
// natives that run bounded loops (e.g. a hypothetical `loop` native could
// poll it; the core natives in this module are simple enough not to need
// it, but the hook is part of the required surface).
type Signaler interface {
	Tick() error
}

// Frame is re-exported from value to give native code a single import for
// both cell and frame types.
type Frame = value.Frame
