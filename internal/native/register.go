package native

import "github.com/renc-lang/rcore/internal/value"

// binder is the narrow surface register.go needs from internal/bind.Context
// (declared here rather than imported directly so this package stays
// agnostic of the concrete binding implementation).
type binder interface {
	Bind(symbol string, val value.Cell)
}

func action(name string, params []value.ParamSpec, flags value.ActionFlags, d value.Dispatcher) *value.Action {
	return &value.Action{Name: name, Params: params, Flags: flags, Dispatch: d}
}

func normal(name string) value.ParamSpec { return value.ParamSpec{Name: name, Class: value.ParamNormal} }
func hardQuote(name string) value.ParamSpec {
	return value.ParamSpec{Name: name, Class: value.ParamHardQuote}
}

// dequoteHardQuote is a hard-quote parameter marked <dequote>: the
// fulfiller strips any quote-escape levels off the raw argument before
// handing it to the dispatcher, and the action (marked ActionRequote)
// re-applies them to the dispatcher's result (spec.md §4.4/§4.5).
func dequoteHardQuote(name string) value.ParamSpec {
	return value.ParamSpec{Name: name, Class: value.ParamHardQuote, Markers: value.MarkerDequote}
}

// refinement is a value-taking refinement parameter (spec.md §3's
// refinement cursor): its slot holds the evaluated argument when the
// refinement is named on the calling path, or null when unused or
// revoked.
func refinement(name string) value.ParamSpec {
	return value.ParamSpec{Name: name, Class: value.ParamNormal, Refinement: true, TakesValue: true}
}

// variadic is a Normal-class parameter that collects every remaining
// expression in the feed (up to end or a `|` barrier) into a block!
// instead of evaluating just one (spec.md §4.4 steps 5-6).
func variadic(name string) value.ParamSpec {
	return value.ParamSpec{Name: name, Class: value.ParamNormal, Variadic: true}
}

// Register binds every native this module defines into root, grounded on
// the teacher's RegisterMathNatives/RegisterControlNatives family
// (internal/native/register_*.go) collapsed into one entry point since
// this module's native surface is a small, fixed set rather than a
// plug-in registry.
func Register(root binder) {
	root.Bind("+", value.ActionCell(action("+", []value.ParamSpec{normal("left"), normal("right")}, value.ActionEnfix, Add)))
	root.Bind("-", value.ActionCell(action("-", []value.ParamSpec{normal("left"), normal("right")}, value.ActionEnfix, Subtract)))
	root.Bind("*", value.ActionCell(action("*", []value.ParamSpec{normal("left"), normal("right")}, value.ActionEnfix, Multiply)))
	root.Bind("/", value.ActionCell(action("/", []value.ParamSpec{normal("left"), normal("right")}, value.ActionEnfix, Divide)))

	root.Bind("if", value.ActionCell(action("if", []value.ParamSpec{normal("condition"), normal("branch")}, 0, If)))
	root.Bind("either", value.ActionCell(action("either", []value.ParamSpec{normal("condition"), normal("true-branch"), normal("false-branch")}, 0, Either)))
	root.Bind("then", value.ActionCell(action("then", []value.ParamSpec{normal("left"), normal("branch")}, value.ActionEnfix|value.ActionDefers, Then)))
	root.Bind("else", value.ActionCell(action("else", []value.ParamSpec{normal("left"), normal("branch")}, value.ActionEnfix|value.ActionDefers, Else)))

	root.Bind("quote", value.ActionCell(action("quote", []value.ParamSpec{hardQuote("value")}, 0, Quote)))
	root.Bind("comment", value.ActionCell(action("comment", []value.ParamSpec{hardQuote("value")}, value.ActionInvisible, Comment)))
	root.Bind("first", value.ActionCell(action("first", []value.ParamSpec{normal("series")}, 0, First)))
	root.Bind("do", value.ActionCell(action("do", []value.ParamSpec{normal("value")}, 0, Do)))
	root.Bind("print", value.ActionCell(action("print", []value.ParamSpec{normal("value")}, 0, Print)))
	root.Bind("func", value.ActionCell(action("func", []value.ParamSpec{normal("spec"), normal("body")}, 0, Funct)))

	// clamp exercises the refinement pickups/revocation machinery
	// (internal/eval/fulfill.go) with two independent value-taking
	// refinements whose symmetric lo/hi computation makes spec.md §8's
	// commutativity law (`f/a/b 1 2 == f/b/a 1 2`) hold honestly rather
	// than by a rigged example.
	root.Bind("clamp", value.ActionCell(action("clamp", []value.ParamSpec{
		normal("value"),
		refinement("floor"),
		refinement("ceiling"),
	}, 0, Clamp)))

	// bump exercises <dequote>/<requote> quote-level tracking end to end:
	// it strips a hard-quoted argument's escape levels, operates on the
	// bare value, and the dispatch bridge re-applies them to the result.
	root.Bind("bump", value.ActionCell(action("bump", []value.ParamSpec{dequoteHardQuote("value")}, value.ActionRequote, Bump)))

	// boxed is a left-quoting (hard-quote) enfix action: legal immediately
	// after a bare literal primary, and a evaluative-quote-violation error
	// immediately after any prior dispatch in the same chain (spec.md §8).
	root.Bind("boxed", value.ActionCell(action("boxed", []value.ParamSpec{hardQuote("value")}, value.ActionEnfix, Boxed)))

	// variadic-sum exercises ParamSpec.Variadic: it greedily consumes every
	// remaining expression in the feed into one block argument.
	root.Bind("variadic-sum", value.ActionCell(action("variadic-sum", []value.ParamSpec{variadic("values")}, 0, VariadicSum)))

	root.Bind("throw", value.ActionCell(action("throw", []value.ParamSpec{normal("value")}, 0, Throw)))
	root.Bind("catch", value.ActionCell(action("catch", []value.ParamSpec{normal("body")}, 0, Catch)))
}
