package value

// ParamClass is the evaluation discipline for one parameter (spec.md §1/
// §4.4): normal (evaluated), tight (evaluated with lookahead suppressed),
// hard-quote (literal, requires the source token be unevaluated), or
// soft-quote (literal unless the token is a quoting trigger -- group!,
// get-word!, get-path!).
type ParamClass uint8

const (
	ParamNormal ParamClass = iota
	ParamTight
	ParamHardQuote
	ParamSoftQuote
	ParamLocal // spec.md §4.4 step 2: `local`/`return` parameter class
)

// ParamMarker holds the `<...>`-style markers spec.md attaches to
// parameters: <skip> (hard-quote may decline and yield), <end> (endable:
// missing trailing argument becomes endish-null instead of erroring),
// <blank> (a blank argument makes the whole call a no-op), <dequote>
// (strip and later re-apply quote levels around the call).
type ParamMarker uint8

const (
	MarkerNone ParamMarker = 0
	MarkerSkip ParamMarker = 1 << iota
	MarkerEnd
	MarkerBlank
	MarkerDequote
)

// ParamSpec describes one formal parameter or refinement. Grounded on the
// teacher's ParamSpec (internal/value/function.go), generalized with the
// Class/Marker vocabulary spec.md §1 and §4.4 require and that the
// teacher's Eval-bool-only model couldn't express (it only distinguished
// "evaluated" vs "raw").
type ParamSpec struct {
	Name       string
	Class      ParamClass
	Refinement bool
	TakesValue bool // for refinements: true if it accepts a value vs boolean flag
	Variadic   bool
	Markers    ParamMarker
}

func (p ParamSpec) Has(m ParamMarker) bool { return p.Markers&m != 0 }

// ActionFlags are action-level flags (spec.md §2 "Action Descriptor":
// "action-level flags").
type ActionFlags uint16

const (
	ActionEnfix ActionFlags = 1 << iota
	ActionInvisible
	// ActionDefers marks an enfix action whose left-hand absorption should
	// be deferred when it is encountered mid-argument-fulfillment (spec.md
	// §4.2 "Deferral rule": then, else).
	ActionDefers
	// ActionPostpones marks an enfix action whose right-hand arguments are
	// gathered with lookahead left on (dispatchEnfix sets NoLookahead only
	// for enfix actions without ActionDefers or ActionPostpones). No native
	// in this module sets it.
	ActionPostpones
	// ActionRequote marks an action whose result should be re-wrapped in
	// the quote levels accumulated via <dequote> parameters (spec.md §4.5
	// "Requote").
	ActionRequote
	// ActionRequoteNull additionally requests requoting even when the
	// result is null (spec.md §4.5).
	ActionRequoteNull
)

func (f ActionFlags) Has(bit ActionFlags) bool { return f&bit != 0 }

// Action is the Action Descriptor of spec.md §2/§4.5: a callable's
// parameter list, dispatcher function pointer, and action-level flags.
// Grounded on the teacher's ActionValue/FunctionValue
// (internal/value/action.go, internal/value/function.go), merged into one
// type since spec.md does not distinguish "native" from "user-defined" at
// the descriptor level -- both are just a Dispatcher.
type Action struct {
	Name    string
	Params  []ParamSpec
	Flags   ActionFlags
	Dispatch Dispatcher
	// Body is a slot for a user-defined action's body block. Nothing in
	// this module sets it: FUNC's dispatcher keeps the body in its own
	// closure, so it is nil for every action, natives and FUNC alike.
	Body *Series
	// Parent is a slot for a user-defined action's enclosing context. Like
	// Body, nothing sets it; FUNC captures the context in its closure.
	Parent Context
}

// Dispatcher is the function-pointer type spec.md §2 describes ("a
// dispatcher function pointer"). It runs against a fully fulfilled Frame
// and returns a result cell. A throw is signaled by returning a *Thrown
// error (internal/eval/thrown.go); a redo by returning a *Redo error
// (internal/eval/dispatch.go).
//
// The Evaluator parameter lets natives that need to recurse into
// evaluation (`if`, `either`, `do`, `comment`...) call back into the loop
// that is dispatching them, without internal/value importing
// internal/eval (which imports internal/value, so that would be a cycle).
// internal/core.Evaluator satisfies this interface structurally.
type Dispatcher func(fr Frame, ev Evaluator) (Cell, error)

// Evaluator is the minimal callback surface a Dispatcher needs. It is
// declared here (rather than only in internal/core) so Dispatcher can
// mention it without this package importing internal/core; *eval.Evaluator
// satisfies it structurally and internal/core.Evaluator embeds the same
// methods for the richer surface internal/native's other callers need.
type Evaluator interface {
	EvalToEnd(vals []Cell, specifier Context) (Cell, error)
	Lookup(symbol string, specifier Context) (Cell, bool)
}

// ActionCell constructs an action! cell.
func ActionCell(a *Action) Cell { return Cell{kind: KindAction, payload: a} }

func AsAction(c Cell) (*Action, bool) {
	if c.Kind() != KindAction {
		return nil, false
	}
	a, ok := c.Payload().(*Action)
	return a, ok
}

// Arity returns the number of required (non-refinement, non-local)
// positional parameters.
func (a *Action) Arity() int {
	n := 0
	for _, p := range a.Params {
		if !p.Refinement && p.Class != ParamLocal {
			n++
		}
	}
	return n
}

func (a *Action) HasRefinement(name string) bool {
	for _, p := range a.Params {
		if p.Refinement && p.Name == name {
			return true
		}
	}
	return false
}

func (a *Action) GetRefinement(name string) *ParamSpec {
	for i := range a.Params {
		if a.Params[i].Refinement && a.Params[i].Name == name {
			return &a.Params[i]
		}
	}
	return nil
}
