// Package eval implements the evaluator core: the loop that pulls cells
// from a Feed, dispatches words and paths to actions, and applies enfix
// lookahead and argument fulfillment around every call (spec.md §4).
//
// Grounded on the teacher's internal/eval/evaluator.go Do_Next/Do_Blk
// architecture -- a dispatch table keyed by kind, a call stack of display
// names for error "Where" context, trace/debug hooks checked around word
// evaluation -- generalized from the teacher's single-pass infix-only
// reader into the two-entry-point design spec.md's lookahead rules need:
// evalExpr (one full statement, absorbing enfix chains) and evalArg (one
// argument, whose enfix absorption can be deferred back up to the
// enclosing statement).
package eval

import (
	"fmt"
	"time"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/core"
	"github.com/renc-lang/rcore/internal/debug"
	"github.com/renc-lang/rcore/internal/feed"
	"github.com/renc-lang/rcore/internal/frame"
	"github.com/renc-lang/rcore/internal/stack"
	"github.com/renc-lang/rcore/internal/trace"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

// Evaluator is the engine driving evaluation of a feed of cells against a
// binding context.
type Evaluator struct {
	stack     *stack.Stack
	callStack []string
	signals   core.Signaler
	depth     int
}

// New creates an evaluator. signals may be nil, which disables periodic
// signal checking (Tick is a no-op).
func New(signals core.Signaler) *Evaluator {
	return &Evaluator{
		stack:     stack.NewStack(256),
		callStack: []string{"(top level)"},
		signals:   signals,
	}
}

var _ core.Evaluator = (*Evaluator)(nil)
var _ value.Evaluator = (*Evaluator)(nil)

func (e *Evaluator) Callstack() []string { return e.callStack }

func (e *Evaluator) Signals() core.Signaler { return e.signals }

func (e *Evaluator) pushCall(name string) {
	if name == "" {
		name = "(anonymous)"
	}
	e.callStack = append(e.callStack, name)
	e.depth++
}

func (e *Evaluator) popCall() {
	e.depth--
	if len(e.callStack) <= 1 {
		return
	}
	e.callStack = e.callStack[:len(e.callStack)-1]
}

func (e *Evaluator) captureCallStack() []string {
	if len(e.callStack) == 0 {
		return nil
	}
	where := make([]string, len(e.callStack))
	for i := range e.callStack {
		where[i] = e.callStack[len(e.callStack)-1-i]
	}
	return where
}

func (e *Evaluator) annotateError(err error, f *feed.Feed, near int) error {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*verror.Error); ok {
		if near >= 0 && near < len(f.Vals()) && verr.Near == "" {
			verr.SetNear(verror.CaptureNear(f.Vals(), near))
		}
		if len(verr.Where) == 0 {
			if where := e.captureCallStack(); len(where) > 0 {
				verr.SetWhere(where)
			}
		}
	}
	return err
}

// Lookup resolves symbol against specifier, walking its Parent chain. This
// is the evaluator-level lookup EvalStep/dispatch use, and the one exposed
// through core.Evaluator so internal/native can call back in (e.g. `do`,
// `bind`, reflection natives).
func (e *Evaluator) Lookup(symbol string, specifier value.Context) (value.Cell, bool) {
	ctx := specifier
	for ctx != nil {
		if v, ok := ctx.Get(symbol); ok {
			return v, true
		}
		ctx = ctx.Parent()
	}
	return value.Null(), false
}

// EvalToEnd evaluates vals against specifier to completion, returning the
// last expression's result -- the root entry point for running a script, a
// REPL line, or a DO'd block.
func (e *Evaluator) EvalToEnd(vals []value.Cell, specifier value.Context) (value.Cell, error) {
	f := feed.New(vals, specifier)
	result := value.Void()
	for !f.AtEnd() {
		if e.signals != nil {
			if err := e.signals.Tick(); err != nil {
				return value.Void(), err
			}
		}
		startIdx := f.Index()
		next, err := e.evalExpr(f)
		if err != nil {
			return value.Void(), e.annotateError(err, f, startIdx)
		}
		// Invisible actions (spec.md §4.5, e.g. COMMENT) evaluate for
		// effect but must not clobber the previous expression's result.
		if !next.HasFlag(value.FlagInvisible) {
			result = next
		}
	}
	return result, nil
}

// EvalStep implements core.Evaluator.EvalStep but does not step: because
// core.Frame is an alias for value.Frame and value.Frame carries no feed
// reference of its own, it has nothing to advance, and it always returns a
// not-implemented error. No caller in this module single-steps; the REPL
// evaluates whole inputs through EvalToEnd.
func (e *Evaluator) EvalStep(fr core.Frame) (bool, error) {
	_ = fr
	return false, verror.NewInternalError(verror.ErrIDNotImplemented, [3]string{"EvalStep outside a feed-driven context", "", ""})
}

// lookupWord resolves a WORD!/GET-WORD!/SET-WORD! cell's symbol against its
// own specifier (falling back to nothing bound, which is a no-value error
// at the call site).
func (e *Evaluator) lookupWord(cell value.Cell) (value.Cell, bool) {
	sym, ok := value.AsWord(cell)
	if !ok {
		return value.Null(), false
	}
	return e.Lookup(sym, cell.Specifier())
}

func bindOf(ctx value.Context) *bind.Context {
	if b, ok := ctx.(*bind.Context); ok {
		return b
	}
	return nil
}

// evalExpr evaluates exactly one full statement starting at f's cursor:
// the primary form, followed by as many enfix operators as lookahead will
// absorb (spec.md §4.2). Used at the top level and inside GROUP!/blocks.
func (e *Evaluator) evalExpr(f *feed.Feed) (value.Cell, error) {
	return e.evalCommon(f, true)
}

// evalArg evaluates one argument for a ParamNormal parameter: same primary
// dispatch as evalExpr, but enfix operators flagged ActionDefers are left
// unconsumed so the calling statement picks them up afterward (spec.md
// §4.2 "Deferral rule": `if x > 0 [...] then [...]`, the `then` must bind
// to the whole `if` call, not just its last argument).
func (e *Evaluator) evalArg(f *feed.Feed) (value.Cell, error) {
	return e.evalCommon(f, false)
}

func (e *Evaluator) evalCommon(f *feed.Feed, topLevel bool) (value.Cell, error) {
	if f.AtEnd() {
		return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{"unexpected end of input", "", ""})
	}

	cell := f.Fetch()
	result, err := e.evalPrimary(f, cell)
	if err != nil {
		return value.Void(), err
	}

	for !f.Flags.Has(feed.NoLookahead) && !f.AtEnd() {
		absorbed, newResult, err := e.lookahead(f, result, topLevel)
		if err != nil {
			return value.Void(), err
		}
		if !absorbed {
			break
		}
		result = newResult
	}
	return result, nil
}

// evalPrimary dispatches a single just-fetched cell per spec.md §4.3's main
// switch: literals self-evaluate, words/paths resolve and (if bound to an
// action) invoke, set-words bind the following expression, quoted cells
// peel one escape level.
func (e *Evaluator) evalPrimary(f *feed.Feed, cell value.Cell) (value.Cell, error) {
	switch cell.Kind() {
	case value.KindQuoted:
		return cell.Unescape().SetFlag(value.FlagUnevaluated), nil

	case value.KindWord:
		if isBarrier(cell) {
			// The `|` evaluation barrier carries no binding and is never
			// looked up: encountered as a fresh statement's primary, it is
			// a no-op the evaluator loop skips over (spec.md §8 scenario 3).
			return value.Void().SetFlag(value.FlagInvisible), nil
		}
		val, ok := e.lookupWord(cell)
		if !ok {
			sym, _ := value.AsWord(cell)
			return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{sym, "", ""})
		}
		if action, ok := value.AsAction(val); ok {
			return e.dispatch(f, action, cell, nil)
		}
		return val, nil

	case value.KindGetWord:
		val, ok := e.lookupWord(cell)
		if !ok {
			sym, _ := value.AsWord(cell)
			return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{sym, "", ""})
		}
		return val, nil

	case value.KindSetWord:
		sym, _ := value.AsWord(cell)
		if f.AtEnd() {
			return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{"set-word without value: " + sym, "", ""})
		}
		result, err := e.evalExpr(f)
		if err != nil {
			return value.Void(), err
		}
		b := bindOf(cell.Specifier())
		if b == nil {
			return value.Void(), verror.NewInternalError(verror.ErrIDAssertionFailed, [3]string{"set-word has no binding context", "", ""})
		}
		b.Bind(sym, result)
		return result, nil

	case value.KindPath, value.KindGetPath:
		return e.evalPath(f, cell)

	case value.KindSetPath:
		return e.evalSetPath(f, cell)

	case value.KindGroup, value.KindGetGroup:
		s, ok := value.AsSeries(cell)
		if !ok {
			return value.Void(), nil
		}
		return e.EvalToEnd(s.Elements, cell.Specifier())

	case value.KindSetGroup:
		return value.Void(), verror.NewScriptError(verror.ErrIDNotImplemented, [3]string{"set-group assignment", "", ""})

	default:
		// blocks and every other inert/self-evaluating kind (integer,
		// decimal, string, logic, null, void, blank, binary, issue,
		// action, frame) return themselves unevaluated -- literally so:
		// FlagUnevaluated marks this as eligible to be hard-quoted by an
		// enfix action's left parameter (spec.md §8's evaluative-quote
		// law), a mark any subsequent dispatch clears.
		return cell.SetFlag(value.FlagUnevaluated), nil
	}
}

func functionDisplayName(a *value.Action) string {
	if a == nil || a.Name == "" {
		return "(anonymous)"
	}
	return a.Name
}

// dispatch fulfills action's arguments from f (refNames non-nil when the
// call came through a path carrying refinement segments) and runs its
// Dispatcher, with call-stack and trace bookkeeping around it.
func (e *Evaluator) dispatch(f *feed.Feed, action *value.Action, callCell value.Cell, refNames []string) (value.Cell, error) {
	name := functionDisplayName(action)
	if debug.Global != nil {
		debug.Global.HandleBreakpoint(name)
	}

	e.pushCall(name)
	defer e.popCall()

	var traceStart time.Time
	tracing := trace.Global != nil && trace.Global.IsEnabled()
	if tracing {
		traceStart = time.Now()
	}

	fr := frame.New(name, action, len(action.Params), e.stack.Top(), nil)
	if err := e.fulfill(f, action, fr, refNames); err != nil {
		return value.Void(), err
	}

	result, err := runDispatch(fr, action, e)

	if tracing {
		args := map[string]string{}
		if trace.Global.IncludeArgs() {
			for i, p := range action.Params {
				args[p.Name] = value.Mold(fr.Arg(i))
			}
		}
		trace.EmitDispatch(name, args, time.Since(traceStart), e.depth, err)
	}
	if err != nil {
		if t, ok := AsThrown(err); ok && tracing {
			trace.EmitThrow(value.Mold(t.Label), e.depth)
		}
		return value.Void(), err
	}

	if action.Flags.Has(value.ActionRequote) {
		if fr.Quotes() > 0 && (!value.IsNull(result) || action.Flags.Has(value.ActionRequoteNull)) {
			result = value.Requote(result, fr.Quotes())
		}
	}
	// A dispatched result is never itself hard-quotable by a later enfix
	// action, even if the dispatcher happened to hand back one of its own
	// unevaluated argument cells (spec.md §8's evaluative-quote law).
	result = result.ClearFlag(value.FlagUnevaluated)
	if action.Flags.Has(value.ActionInvisible) {
		result = result.SetFlag(value.FlagInvisible)
	}
	return result, nil
}

func (e *Evaluator) evalPath(f *feed.Feed, cell value.Cell) (value.Cell, error) {
	s, ok := value.AsSeries(cell)
	if !ok || len(s.Elements) == 0 {
		return value.Void(), verror.NewScriptError(verror.ErrIDInvalidSyntax, [3]string{"empty path", "", ""})
	}
	head := s.Elements[0].WithSpecifier(cell.Specifier())

	// A word head is looked up WITHOUT going through evalPrimary's own
	// word-dispatch branch: if it resolves to an action, the refinement
	// segments below must be gathered before the call is made, not after.
	var base value.Cell
	if head.Kind() == value.KindWord {
		val, ok := e.lookupWord(head)
		if !ok {
			sym, _ := value.AsWord(head)
			return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{sym, "", ""})
		}
		base = val
	} else {
		var err error
		base, err = e.evalPrimary(f, head)
		if err != nil {
			return value.Void(), err
		}
	}

	if action, ok := value.AsAction(base); ok && head.Kind() == value.KindWord {
		// An enfix action has nothing to steal when invoked through a path
		// head: refinement segments come from the SAME cell that would
		// otherwise supply the left-hand argument, and there is no prior
		// `result` to quote backward (spec.md §9's open question on path
		// dispatch of enfix actions -- resolved here as an explicit error
		// rather than silent ordinary-prefix dispatch).
		if action.Flags.Has(value.ActionEnfix) {
			sym, _ := value.AsWord(head)
			return value.Void(), verror.NewEvalError(verror.ErrIDLiteralLeftPath, [3]string{sym, "", ""})
		}
		refNames := make([]string, 0, len(s.Elements)-1)
		for _, seg := range s.Elements[1:] {
			name, ok := value.AsWord(seg)
			if !ok {
				return value.Void(), verror.NewScriptError(verror.ErrIDInvalidSyntax, [3]string{"path refinement must be a word", "", ""})
			}
			refNames = append(refNames, name)
		}
		return e.dispatch(f, action, cell, refNames)
	}

	// Non-action path: ordinary series/field traversal (spec.md's data
	// model scopes objects out; only integer-indexed block/string
	// traversal is supported here).
	cur := base
	for _, seg := range s.Elements[1:] {
		idx, ok := value.AsInteger(seg)
		if !ok {
			return value.Void(), verror.NewScriptError(verror.ErrIDPathTypeMismatch, [3]string{"path segment requires integer index", "", ""})
		}
		series, ok := value.AsSeries(cur)
		if !ok {
			return value.Void(), verror.NewScriptError(verror.ErrIDPathTypeMismatch, [3]string{"path base is not indexable", "", ""})
		}
		if idx < 1 || int(idx) > len(series.Elements) {
			return value.Void(), verror.NewScriptError(verror.ErrIDOutOfBounds, [3]string{fmt.Sprint(idx), fmt.Sprint(len(series.Elements)), ""})
		}
		cur = series.Elements[idx-1]
	}
	return cur, nil
}

func (e *Evaluator) evalSetPath(f *feed.Feed, cell value.Cell) (value.Cell, error) {
	s, ok := value.AsSeries(cell)
	if !ok || len(s.Elements) < 2 {
		return value.Void(), verror.NewScriptError(verror.ErrIDInvalidSyntax, [3]string{"set-path requires at least 2 segments", "", ""})
	}
	if f.AtEnd() {
		return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{"set-path without value", "", ""})
	}
	newVal, err := e.evalExpr(f)
	if err != nil {
		return value.Void(), err
	}

	head := s.Elements[0].WithSpecifier(cell.Specifier())
	base, ok := e.lookupWord(head)
	if !ok {
		sym, _ := value.AsWord(head)
		return value.Void(), verror.NewScriptError(verror.ErrIDNoValue, [3]string{sym, "", ""})
	}
	cur := base
	for _, seg := range s.Elements[1 : len(s.Elements)-1] {
		idx, ok := value.AsInteger(seg)
		if !ok {
			return value.Void(), verror.NewScriptError(verror.ErrIDPathTypeMismatch, [3]string{"path segment requires integer index", "", ""})
		}
		series, ok := value.AsSeries(cur)
		if !ok {
			return value.Void(), verror.NewScriptError(verror.ErrIDPathTypeMismatch, [3]string{"path base is not indexable", "", ""})
		}
		if idx < 1 || int(idx) > len(series.Elements) {
			return value.Void(), verror.NewScriptError(verror.ErrIDOutOfBounds, [3]string{fmt.Sprint(idx), fmt.Sprint(len(series.Elements)), ""})
		}
		cur = series.Elements[idx-1]
	}

	lastSeg := s.Elements[len(s.Elements)-1]
	idx, ok := value.AsInteger(lastSeg)
	if !ok {
		return value.Void(), verror.NewScriptError(verror.ErrIDPathTypeMismatch, [3]string{"path segment requires integer index", "", ""})
	}
	series, ok := value.AsSeries(cur)
	if !ok {
		return value.Void(), verror.NewScriptError(verror.ErrIDImmutableTarget, [3]string{"cannot assign through this path", "", ""})
	}
	if idx < 1 || int(idx) > len(series.Elements) {
		return value.Void(), verror.NewScriptError(verror.ErrIDOutOfBounds, [3]string{fmt.Sprint(idx), fmt.Sprint(len(series.Elements)), ""})
	}
	series.Elements[idx-1] = newVal
	return newVal, nil
}
