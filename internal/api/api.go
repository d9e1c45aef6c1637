// Package api is a thin embedding facade over the evaluator: parse and
// run one source string against a caller-supplied root context, for
// hosts that want this module as a library rather than through
// cmd/rcore. Grounded on the teacher's internal/api package (same
// parse-then-evaluate shape), narrowed to one function since this
// module's embedding surface has no port/ABI host-callback layer to
// expose (this module has no port! kind; see internal/value/kind.go).
package api

import (
	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/value"
)

// NewRootContext returns a fresh binding context with every native action
// registered, ready for Run.
func NewRootContext() *bind.Context {
	root := bind.NewContext(nil)
	native.Register(root)
	return root
}

// Run parses source against root and evaluates it to completion, returning
// the final expression's result.
func Run(source string, root *bind.Context) (value.Cell, error) {
	values, err := parse.Parse(source, root)
	if err != nil {
		return value.Void(), err
	}
	ev := eval.New(signals.NewCounter(0, nil))
	return ev.EvalToEnd(values, root)
}
