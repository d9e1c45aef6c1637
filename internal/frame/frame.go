// Package frame implements the evaluator's per-invocation Frame: the state
// threaded through one call to one action from the moment its arguments
// start being gathered until its dispatcher returns (spec.md §2/§9).
//
// This is NOT the teacher's internal/frame package (that was a word->value
// binding table, renamed to internal/bind.Context in this repo -- see that
// package's doc comment for why). This Frame is grounded on the teacher's
// internal/stack.Frame layout (return slot / prior frame / function /
// args), generalized from a flat stack-slot range into a heap struct with a
// Parent pointer and pointer-accessor methods, because spec.md's Frame
// hands dispatchers a mutable Output/Spare/Arg cell to write through
// directly (the teacher's stack slots played the same role via
// SetFrameReturn/SetFrameArg).
package frame

import "github.com/renc-lang/rcore/internal/value"

var _ value.Frame = (*Frame)(nil)

// Frame implements value.Frame.
type Frame struct {
	output value.Cell
	spare  value.Cell

	label string
	phase *value.Action

	args   []value.Cell
	refine value.RefineState

	dataStackBase int
	varList       value.Context

	quotes int
	flags  value.FrameFlags

	parent *Frame
}

// New allocates a fresh Frame for calling phase with argCount positional
// slots (refinements included -- the fulfiller decides which are filled).
func New(label string, phase *value.Action, argCount int, dataStackBase int, parent *Frame) *Frame {
	return &Frame{
		output:        value.Void(),
		spare:         value.Void(),
		label:         label,
		phase:         phase,
		args:          make([]value.Cell, argCount),
		dataStackBase: dataStackBase,
		parent:        parent,
	}
}

func (f *Frame) Output() *value.Cell { return &f.output }
func (f *Frame) Spare() *value.Cell  { return &f.spare }
func (f *Frame) Label() string       { return f.label }
func (f *Frame) Phase() *value.Action { return f.phase }
func (f *Frame) ArgCount() int       { return len(f.args) }

// Arg returns a pointer to argument slot i so natives and the fulfiller can
// write through it directly, matching the teacher's SetFrameArg/GetFrameArg
// pair collapsed into one addressable accessor.
func (f *Frame) Arg(i int) *value.Cell { return &f.args[i] }

func (f *Frame) Refine() value.RefineState        { return f.refine }
func (f *Frame) SetRefine(r value.RefineState)     { f.refine = r }
func (f *Frame) DataStackBase() int                { return f.dataStackBase }
func (f *Frame) VarList() value.Context            { return f.varList }
func (f *Frame) SetVarList(ctx value.Context)       { f.varList = ctx }
func (f *Frame) Flags() value.FrameFlags           { return f.flags }
func (f *Frame) SetFlags(fl value.FrameFlags)      { f.flags = fl }
func (f *Frame) Quotes() int                       { return f.quotes }
func (f *Frame) SetQuotes(n int)                   { f.quotes = n }

func (f *Frame) Parent() value.Frame {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

// HasFlag/AddFlag/ClearFlag are convenience wrappers over the FrameFlags
// bitmask, mirroring Cell's own flag helpers.
func (f *Frame) HasFlag(bit value.FrameFlags) bool { return f.flags&bit != 0 }
func (f *Frame) AddFlag(bit value.FrameFlags)      { f.flags |= bit }
func (f *Frame) ClearFlag(bit value.FrameFlags)    { f.flags &^= bit }
