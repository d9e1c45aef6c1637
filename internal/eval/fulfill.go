package eval

import (
	"github.com/renc-lang/rcore/internal/feed"
	"github.com/renc-lang/rcore/internal/frame"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

// fulfill walks action.Params in declaration order, filling fr's argument
// slots from f, and implements spec.md §4.4's refinement pickups: a
// path-call's refinement names are pushed onto the data stack in the order
// the caller wrote them, then -- once the ordinary positional arguments
// have all been consumed -- revisited in THAT order (which may differ from
// declaration order) to pull each value-taking refinement's argument.
func (e *Evaluator) fulfill(f *feed.Feed, action *value.Action, fr *frame.Frame, refNames []string) error {
	return e.fulfillFrom(f, action, fr, refNames, 0)
}

// fulfillFrom is fulfill with the first `skip` parameters already bound
// (used by enfix dispatch, which fills parameter 0 with the stolen
// left-hand argument before calling in here for the rest).
func (e *Evaluator) fulfillFrom(f *feed.Feed, action *value.Action, fr *frame.Frame, refNames []string, skip int) error {
	dsBase := e.stack.Top()

	for _, name := range refNames {
		p := action.GetRefinement(name)
		if p == nil {
			return verror.NewEvalError(verror.ErrIDBadRefine, [3]string{name, "", ""})
		}
		for _, c := range e.stack.Slice(dsBase) {
			if s, _ := value.AsWord(c); s == name {
				return verror.NewEvalError(verror.ErrIDDuplicateRefinement, [3]string{name, "", ""})
			}
		}
		e.stack.Push(value.Word(name))
	}

	for i := skip; i < len(action.Params); i++ {
		p := action.Params[i]

		if p.Refinement {
			active := false
			for _, name := range refNames {
				if name == p.Name {
					active = true
					break
				}
			}
			if !active {
				if p.TakesValue {
					*fr.Arg(i) = value.Null()
				} else {
					*fr.Arg(i) = value.Logic(false)
				}
				fr.SetRefine(value.RefineState{Mode: value.RefineArgToUnused})
				continue
			}
			if !p.TakesValue {
				*fr.Arg(i) = value.Logic(true)
				continue
			}
			// Value-taking refinements are deferred to the pickups phase
			// below; placeholder until then.
			*fr.Arg(i) = value.Null()
			continue
		}

		if p.Class == value.ParamLocal {
			*fr.Arg(i) = value.Void()
			continue
		}

		if p.Variadic {
			// Scoped-down variadic installation (spec.md §4.4 steps 5-6):
			// this evaluator is a single-pass tree-walker with no lazy feed
			// abstraction, so rather than handing the dispatcher an
			// incremental VARARGS! cursor, a variadic parameter greedily
			// evaluates every remaining expression up to end-of-feed or a
			// barrier and installs the results as a block!. Dispatchers see
			// the same "run out the tail" shape the real VARARGS! protocol
			// exposes one TAKE at a time.
			var items []value.Cell
			for !f.AtEnd() && !isBarrier(f.Peek()) {
				val, err := e.evalArg(f)
				if err != nil {
					return err
				}
				items = append(items, val)
			}
			*fr.Arg(i) = value.Block(items)
			continue
		}

		val, err := e.evalArgForParam(f, fr, p)
		if err != nil {
			return err
		}
		*fr.Arg(i) = val
	}

	// Pickups phase: revisit value-taking active refinements in the order
	// the caller named them (spec.md §4.4 "Pickups"), tracking revocation:
	// a refinement whose argument evaluates to null is revoked (its slot
	// stays null, same as an unused refinement). Revoking a refinement that
	// is declared BEFORE one that has already committed to a non-null value
	// this same pickups pass is an ordering error -- the later-declared
	// refinement may already have been fulfilled on the assumption the
	// earlier one was active.
	var resolvedNonNull []int
	for _, c := range e.stack.Slice(dsBase) {
		name, _ := value.AsWord(c)
		p := action.GetRefinement(name)
		if p == nil || !p.TakesValue {
			continue
		}
		idx := paramIndex(action, name)
		fr.SetRefine(value.RefineState{Mode: value.RefineInUse, ArgSlot: fr.Arg(idx)})
		val, err := e.evalArgForParam(f, fr, *p)
		if err != nil {
			return err
		}
		if value.IsNull(val) {
			for _, seenIdx := range resolvedNonNull {
				if seenIdx > idx {
					return verror.NewEvalError(verror.ErrIDRevokeOrder, [3]string{name, "", ""})
				}
			}
			*fr.Arg(idx) = value.Null()
			continue
		}
		resolvedNonNull = append(resolvedNonNull, idx)
		*fr.Arg(idx) = val
	}
	fr.SetRefine(value.RefineState{Mode: value.RefineOrdinaryArg})
	e.stack.TruncateTo(dsBase)
	return nil
}

func paramIndex(action *value.Action, name string) int {
	for i, p := range action.Params {
		if p.Refinement && p.Name == name {
			return i
		}
	}
	return -1
}

// barrierWord is the evaluation-barrier separator (spec.md §4.1/§8): it
// carries no binding and is recognized structurally by the evaluator,
// never through word lookup.
const barrierWord = "|"

func isBarrier(c value.Cell) bool {
	sym, ok := value.AsWord(c)
	return ok && sym == barrierWord
}

// barrierAhead reports whether the next unconsumed cell is a `|` barrier,
// recording the hit on both the feed (for this call's remaining
// fulfillment) and the frame (spec.md §6's FrameBarrierHit) without
// consuming the barrier itself -- the top-level loop needs to see it next
// so it can treat it as its own no-op statement.
func barrierAhead(f *feed.Feed, fr *frame.Frame) bool {
	if f.AtEnd() || !isBarrier(f.Peek()) {
		return false
	}
	f.Flags |= feed.BarrierHit
	if fr != nil {
		fr.AddFlag(value.FrameBarrierHit)
	}
	return true
}

// evalArgForParam fetches/evaluates one argument according to its
// parameter's evaluation discipline (spec.md §1/§4.4): hard-quote and
// soft-quote parameters may take the raw next cell without evaluating it;
// normal parameters absorb enfix lookahead on their own right-hand side
// (unless the feed's NoLookahead is set, as dispatchEnfix does while it
// gathers an ordinary enfix action's right-hand arguments);
// tight parameters evaluate without that lookahead.
func (e *Evaluator) evalArgForParam(f *feed.Feed, fr *frame.Frame, p value.ParamSpec) (value.Cell, error) {
	// Ordinary fulfillment from feed, step 1 (spec.md §4.4 step 7): an
	// argument fetch can never start while a deferred enfix action is still
	// waiting to be picked up by the statement that deferred it -- doing so
	// would silently strand the deferral or apply it somewhere ambiguous.
	if f.Flags.Has(feed.DeferringEnfix) {
		f.Flags &^= feed.DeferringEnfix
		return value.Void(), verror.NewEvalError(verror.ErrIDAmbiguousInfix, [3]string{p.Name, "", ""})
	}

	switch p.Class {
	case value.ParamHardQuote:
		if f.AtEnd() || barrierAhead(f, fr) {
			if p.Has(value.MarkerEnd) {
				return value.Null(), nil
			}
			return value.Void(), verror.NewEvalError(verror.ErrIDNoArgGiven, [3]string{p.Name, "", ""})
		}
		raw := f.Fetch()
		if p.Has(value.MarkerDequote) {
			base, level := raw.Unquoted()
			fr.SetQuotes(fr.Quotes() + level)
			return base, nil
		}
		return raw, nil

	case value.ParamSoftQuote:
		if f.AtEnd() || barrierAhead(f, fr) {
			if p.Has(value.MarkerEnd) {
				return value.Null(), nil
			}
			return value.Void(), verror.NewEvalError(verror.ErrIDNoArgGiven, [3]string{p.Name, "", ""})
		}
		peek := f.Peek()
		switch peek.Kind() {
		case value.KindGroup, value.KindGetWord, value.KindGetPath, value.KindGetGroup:
			return e.evalArg(f)
		default:
			return f.Fetch(), nil
		}

	case value.ParamTight:
		if f.AtEnd() || barrierAhead(f, fr) {
			if p.Has(value.MarkerEnd) {
				return value.Null(), nil
			}
			return value.Void(), verror.NewEvalError(verror.ErrIDNoArgGiven, [3]string{p.Name, "", ""})
		}
		prevFlags := f.Flags
		f.Flags |= feed.NoLookahead
		val, err := e.evalArg(f)
		f.Flags = prevFlags
		return val, err

	default: // ParamNormal
		if f.AtEnd() || barrierAhead(f, fr) {
			if p.Has(value.MarkerEnd) {
				return value.Null(), nil
			}
			return value.Void(), verror.NewEvalError(verror.ErrIDNoArgGiven, [3]string{p.Name, "", ""})
		}
		return e.evalArg(f)
	}
}
