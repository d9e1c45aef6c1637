package eval

import (
	"github.com/renc-lang/rcore/internal/feed"
	"github.com/renc-lang/rcore/internal/frame"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

// lookahead implements spec.md §4.2: after a primary expression has been
// evaluated, peek at the next cell; if it is a word bound to an enfix
// action, steal `result` as that action's left-hand (quoted) argument and
// dispatch it, producing a new result the loop in evalCommon will try to
// chain further.
//
// Grounded conceptually on the teacher's collectFunctionArgsWithInfix
// "infix" branch (lastResult becomes the first argument when fn.Infix),
// generalized from "infix" (binary-only, no deferral) into the full
// lookahead/deferral/tight-suppression rule set spec.md §4.2 names.
func (e *Evaluator) lookahead(f *feed.Feed, result value.Cell, topLevel bool) (bool, value.Cell, error) {
	next := f.Peek()
	if isBarrier(next) {
		f.Flags |= feed.BarrierHit
		return false, value.Void(), nil
	}
	if next.Kind() != value.KindWord {
		return false, value.Void(), nil
	}
	action, ok := e.actionAt(next)
	if !ok || !action.Flags.Has(value.ActionEnfix) {
		return false, value.Void(), nil
	}

	// Deferral rule: an enfix action marked ActionDefers only binds to a
	// whole statement, never to a single argument being fetched mid-call.
	// When evalArg (topLevel == false) hits one, it must leave the cursor
	// alone so the enclosing evalExpr's lookahead loop picks it up once the
	// call that's gathering this argument has returned.
	if action.Flags.Has(value.ActionDefers) && !topLevel {
		if f.Flags.Has(feed.DeferringEnfix) {
			return false, value.Void(), nil
		}
		f.Flags |= feed.DeferringEnfix
		return false, value.Void(), nil
	}
	f.Flags &^= feed.DeferringEnfix

	f.Fetch() // consume the enfix word itself

	out, err := e.dispatchEnfix(f, action, next, result)
	if err != nil {
		return false, value.Void(), err
	}

	// ActionPostpones only changes how dispatchEnfix gathers the right-hand
	// arguments; its result is chained further like any other enfix result.
	if action.Flags.Has(value.ActionPostpones) {
		return true, out, nil
	}
	return true, out, nil
}

// actionAt resolves a word cell to an action value through an ordinary
// lookupWord call (the feed-level lookup cache is not consulted).
func (e *Evaluator) actionAt(cell value.Cell) (*value.Action, bool) {
	val, ok := e.lookupWord(cell)
	if !ok {
		return nil, false
	}
	return value.AsAction(val)
}

// dispatchEnfix fulfills an enfix action's parameter list with `left` as
// the already-evaluated first argument (hard-quoted off the stream, per
// spec.md's "backward-quote stealing"), then runs the dispatcher.
func (e *Evaluator) dispatchEnfix(f *feed.Feed, action *value.Action, callCell, left value.Cell) (value.Cell, error) {
	name := functionDisplayName(action)
	e.pushCall(name)
	defer e.popCall()

	fr := frame.New(name, action, len(action.Params), e.stack.Top(), nil)
	if len(action.Params) == 0 {
		return value.Void(), nil
	}
	// A left-quoting (hard-quote) enfix parameter may only steal a value
	// straight off a primary that has not itself passed through a prior
	// dispatch in this same chain (spec.md §8's evaluative-quote law): once
	// `left` is the output of an earlier call, there is no longer a literal
	// token behind it to quote.
	if action.Params[0].Class == value.ParamHardQuote && !left.HasFlag(value.FlagUnevaluated) {
		return value.Void(), verror.NewEvalError(verror.ErrIDEvaluativeQuoteViolation, [3]string{name, "", ""})
	}
	*fr.Arg(0) = left

	// An ordinary enfix action takes its right-hand arguments without
	// lookahead, so chains run left to right: `1 + 2 * 3` is `(1 + 2) * 3`.
	tight := !action.Flags.Has(value.ActionDefers) &&
		!action.Flags.Has(value.ActionPostpones) &&
		!f.Flags.Has(feed.NoLookahead)
	if tight {
		f.Flags |= feed.NoLookahead
	}
	err := e.fulfillFrom(f, action, fr, nil, 1)
	if tight {
		f.Flags &^= feed.NoLookahead
	}
	if err != nil {
		return value.Void(), err
	}
	result, err := runDispatch(fr, action, e)
	if err != nil {
		return value.Void(), err
	}
	result = result.ClearFlag(value.FlagUnevaluated)
	return result, nil
}
