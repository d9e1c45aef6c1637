package native

import (
	"fmt"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

// blockBody extracts the element series of a block! argument, grounded on
// the teacher's When/If natives requiring a block! branch argument.
func blockBody(name string, c value.Cell) (*value.Series, error) {
	if c.Kind() != value.KindBlock {
		return nil, typeError(name, "block!", c)
	}
	s, _ := value.AsSeries(c)
	return s, nil
}

// runBlock evaluates a branch block against the calling word's own
// specifier, mirroring the teacher's eval.DoBlock recursion (When/If in
// internal/native/control.go) but going through the narrow
// value.Evaluator surface instead of a concrete *eval.Evaluator.
func runBlock(ev value.Evaluator, c value.Cell) (value.Cell, error) {
	s, _ := value.AsSeries(c)
	return ev.EvalToEnd(s.Elements, c.Specifier())
}

// If implements `if condition [branch]`: evaluates branch when condition
// is truthy, otherwise returns null.
func If(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	cond, branch := *fr.Arg(0), *fr.Arg(1)
	if _, err := blockBody("if", branch); err != nil {
		return value.Void(), err
	}
	if !value.IsTruthy(cond) {
		return value.Null(), nil
	}
	return runBlock(ev, branch)
}

// Either implements `either condition [true-branch] [false-branch]`.
func Either(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	cond, trueBranch, falseBranch := *fr.Arg(0), *fr.Arg(1), *fr.Arg(2)
	if _, err := blockBody("either", trueBranch); err != nil {
		return value.Void(), err
	}
	if _, err := blockBody("either", falseBranch); err != nil {
		return value.Void(), err
	}
	if value.IsTruthy(cond) {
		return runBlock(ev, trueBranch)
	}
	return runBlock(ev, falseBranch)
}

// Then implements the enfix `then` combinator: `value then [branch]` runs
// branch (passing value as its sole argument binding -- simplified here to
// an argument-less branch, since this module's action model has no
// closures over the piped value) only when value is not null, otherwise
// passing the null straight through. Grounded on Ren-C's THEN, scoped down
// to match this repo's simpler enfix/deferral model (spec.md §4.2).
func Then(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	left, branch := *fr.Arg(0), *fr.Arg(1)
	if _, err := blockBody("then", branch); err != nil {
		return value.Void(), err
	}
	if value.IsNull(left) {
		return left, nil
	}
	return runBlock(ev, branch)
}

// Else implements the enfix `else` combinator: the mirror image of Then,
// running branch only when the left-hand value IS null.
func Else(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	left, branch := *fr.Arg(0), *fr.Arg(1)
	if _, err := blockBody("else", branch); err != nil {
		return value.Void(), err
	}
	if !value.IsNull(left) {
		return left, nil
	}
	return runBlock(ev, branch)
}

// Quote implements the `quote` native: a hard-quote parameter that returns
// its argument completely unevaluated, one level more escaped. Grounded on
// the teacher's Quote (Ren-C calls this "the" for non-quoting passthrough
// and "quote" for the escaping form; this module keeps the escaping one
// since FlagUnevaluated alone does not model escape levels).
func Quote(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	return (*fr.Arg(0)).Escape(), nil
}

// Comment implements the invisible `comment` native: consumes a string or
// block argument and produces no value the evaluator loop will keep
// (ActionInvisible on the action descriptor is what makes this safe to
// chain after any expression, spec.md §4.5).
func Comment(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	return value.Void(), nil
}

// First implements `first series`: the first element of a block!/string!,
// or an error on an empty series. Grounded on the teacher's series
// natives (internal/native/data.go), trimmed to the one accessor this
// repo's data model needs to exercise block/string traversal.
func First(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	c := *fr.Arg(0)
	if s, ok := value.AsSeries(c); ok {
		if len(s.Elements) == 0 {
			return value.Void(), verror.NewScriptError(verror.ErrIDEmptySeries, [3]string{"first", "", ""})
		}
		return s.Elements[0], nil
	}
	if sv, ok := value.AsString(c); ok {
		if sv.Len() == 0 {
			return value.Void(), verror.NewScriptError(verror.ErrIDEmptySeries, [3]string{"first", "", ""})
		}
		return value.Str(string(sv.Runes[0])), nil
	}
	return value.Void(), typeError("first", "block! string!", c)
}

// Do implements `do value`: runs a block's contents to completion, or
// hands back any other value unevaluated a second time (spec.md's DO
// native, grounded on the teacher's Do dispatcher in control.go).
func Do(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	c := *fr.Arg(0)
	if c.Kind() == value.KindBlock {
		s, _ := value.AsSeries(c)
		return ev.EvalToEnd(s.Elements, c.Specifier())
	}
	return c, nil
}

// Funct implements `func [params] [body]`: builds a user-defined action!
// by binding each fulfilled argument to its parameter name in a fresh
// child context and evaluating body against it. This generalizes the
// Action Descriptor (spec.md §2's "parameter list, dispatcher function
// pointer") to script-defined callables -- every native in this file
// already IS an Action{Params, Dispatch}, so a user-level func native
// just builds one at runtime instead of at Go compile time, letting
// bootstrap mezzanine words (not/default/unless) be written as ordinary
// script rather than hardcoded into the native set.
func Funct(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	specCell, bodyCell := *fr.Arg(0), *fr.Arg(1)
	specSeries, err := blockBody("func", specCell)
	if err != nil {
		return value.Void(), err
	}
	bodySeries, err := blockBody("func", bodyCell)
	if err != nil {
		return value.Void(), err
	}

	names := make([]string, 0, len(specSeries.Elements))
	params := make([]value.ParamSpec, 0, len(specSeries.Elements))
	for _, c := range specSeries.Elements {
		name, ok := value.AsWord(c)
		if !ok {
			return value.Void(), typeError("func", "word!", c)
		}
		names = append(names, name)
		params = append(params, value.ParamSpec{Name: name, Class: value.ParamNormal})
	}

	body := append([]value.Cell(nil), bodySeries.Elements...)
	parent, _ := bodyCell.Specifier().(*bind.Context)

	dispatch := func(callFr value.Frame, callEv value.Evaluator) (value.Cell, error) {
		child := bind.NewContextWithCapacity(parent, len(names))
		for i, name := range names {
			child.Bind(name, *callFr.Arg(i))
		}
		return callEv.EvalToEnd(body, child)
	}

	return value.ActionCell(&value.Action{Name: "user-func", Params: params, Dispatch: dispatch}), nil
}

// Clamp implements `clamp value /floor low /ceiling high`: bounds value
// between the active refinements' arguments. An unsupplied or revoked
// refinement (its slot null -- internal/eval/fulfill.go's pickups phase)
// leaves that bound open. Both bounds active are normalized so the lower
// of the two is the floor regardless of which was passed first, which is
// what makes spec.md §8's `f/a/b 1 2 == f/b/a 1 2` commutativity law hold
// for this particular native rather than merely for a contrived one.
func Clamp(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	v, ok := value.AsInteger(*fr.Arg(0))
	if !ok {
		return value.Void(), typeError("clamp", "integer!", *fr.Arg(0))
	}
	lo, hasLo := value.AsInteger(*fr.Arg(1))
	hi, hasHi := value.AsInteger(*fr.Arg(2))
	switch {
	case hasLo && hasHi:
		if lo > hi {
			lo, hi = hi, lo
		}
	case hasLo:
		hi = v
		if hi < lo {
			hi = lo
		}
	case hasHi:
		lo = v
		if lo > hi {
			lo = hi
		}
	default:
		return value.Integer(v), nil
	}
	switch {
	case v < lo:
		return value.Integer(lo), nil
	case v > hi:
		return value.Integer(hi), nil
	default:
		return value.Integer(v), nil
	}
}

// Bump implements `bump 'value`: increments an integer argument that
// arrived hard-quoted and <dequote>-marked. The fulfiller has already
// stripped the argument's quote-escape levels into the frame (spec.md
// §4.4's <dequote>); Bump operates on the bare value and the dispatch
// bridge (ActionRequote, internal/eval/evaluator.go) re-applies them to
// the result, so `bump '5` yields a once-quoted 6.
func Bump(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	n, ok := value.AsInteger(*fr.Arg(0))
	if !ok {
		return value.Void(), typeError("bump", "integer!", *fr.Arg(0))
	}
	return value.Integer(n + 1), nil
}

// Boxed implements the left-quoting enfix `value boxed`: wraps its
// hard-quoted left-hand argument in a one-element block without
// evaluating it. Legal only immediately after a bare literal primary --
// internal/eval/lookahead.go's dispatchEnfix rejects it (evaluative-
// quote-violation) once `value` is itself the result of a prior dispatch
// in the same chain, per spec.md §8's quoting law.
func Boxed(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	return value.Block([]value.Cell{*fr.Arg(0)}), nil
}

// VariadicSum implements `variadic-sum ...`: sums every trailing integer
// expression the fulfiller greedily collected into its Variadic parameter
// (internal/eval/fulfill.go), exercising ParamSpec.Variadic end to end.
func VariadicSum(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	s, err := blockBody("variadic-sum", *fr.Arg(0))
	if err != nil {
		return value.Void(), err
	}
	var total int64
	for _, el := range s.Elements {
		n, ok := value.AsInteger(el)
		if !ok {
			return value.Void(), typeError("variadic-sum", "integer!", el)
		}
		total += n
	}
	return value.Integer(total), nil
}

// throwLabel is the issue! every plain THROW unwinds under; CATCH (which
// has no refinements) catches exactly this label, leaving BREAK/CONTINUE/
// RETURN's reserved labels (internal/eval/thrown.go) to pass through
// uncaught -- a loop construct is out of this module's scope (spec.md's
// standard-library Non-goal), so there is nothing yet that would consume
// them.
var throwLabel = value.Issue("throw")

// Throw implements `throw value`: unwinds the call stack with value as a
// Thrown payload (spec.md §4.5/§7's "throw propagation" headline
// feature), carried through the same error-return channel as an ordinary
// failure until a CATCH (or the top level) intercepts it.
func Throw(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	return value.Void(), eval.NewThrow(throwLabel, *fr.Arg(0))
}

// Catch implements `catch [body]`: runs body, and if it throws under the
// plain THROW label, returns the thrown value instead of propagating the
// error further. Any other error -- including a throw under a different
// label -- passes through unchanged (spec.md §4.5's unwind-catch
// semantics, scoped down to label-based matching rather than full
// frame-identity matching since this module has no loop constructs that
// would need the latter).
func Catch(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	body := *fr.Arg(0)
	if _, err := blockBody("catch", body); err != nil {
		return value.Void(), err
	}
	result, err := runBlock(ev, body)
	if err == nil {
		return result, nil
	}
	if t, ok := eval.AsThrown(err); ok && t.Label.Equal(throwLabel) {
		return t.Value, nil
	}
	return value.Void(), err
}

// Print implements `print value`: writes value to standard output followed
// by a newline (a string's text as is, any other value in molded form),
// and returns void. Grounded on
// the teacher's Print (internal/native/io.go), trimmed to stdout only
// (ports are out of scope -- see DESIGN.md).
func Print(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	c := *fr.Arg(0)
	if sv, ok := value.AsString(c); ok {
		fmt.Println(sv.String())
		return value.Void(), nil
	}
	fmt.Println(value.Mold(c))
	return value.Void(), nil
}
