// Package stack implements the evaluator's Data Stack: a LIFO scratch area
// for pending partial refinements, ordered refinement names collected while
// scanning a path-call, and (via markers) bookkeeping the argument fulfiller
// needs for the pickups phase (spec.md §4.4 "Pickups").
//
// Grounded on the teacher's internal/stack package: index-based access
// (never pointers) so the stack can grow without invalidating references
// held elsewhere, per the teacher's own stack-safety convention. The
// teacher's Stack stored core.Value and additionally multiplexed function
// call frames onto the same array; frames now live in internal/frame as
// their own heap-allocated structs (see that package's doc comment), so
// this Stack goes back to being pure data -- closer to Ren-C's DS_PUSH/
// DS_DROP data stack than to the teacher's combined stack+frame design.
package stack

import "github.com/renc-lang/rcore/internal/value"

// Stack is the unified data-stack storage used while fulfilling a call:
// ordinary refinement names get pushed as words during the pre-scan, and
// their corresponding argument slots are reserved so the pickups phase can
// revisit them in call order rather than declaration order.
type Stack struct {
	data []value.Cell
	top  int
}

// NewStack creates a stack with the given initial capacity.
func NewStack(initialCapacity int) *Stack {
	return &Stack{data: make([]value.Cell, 0, initialCapacity)}
}

// Push adds a cell to the stack top and returns its absolute index.
func (s *Stack) Push(v value.Cell) int {
	index := s.top
	if s.top >= len(s.data) {
		s.data = append(s.data, v)
	} else {
		s.data[s.top] = v
	}
	s.top++
	return index
}

// Pop removes and returns the top cell. Panics on underflow -- callers
// always know the stack's shape from DataStackBase bookkeeping.
func (s *Stack) Pop() value.Cell {
	if s.top <= 0 {
		panic("stack: underflow")
	}
	s.top--
	return s.data[s.top]
}

// Get retrieves the cell at an absolute index. Safe across growth since
// indices, not pointers, are what callers hold onto.
func (s *Stack) Get(index int) value.Cell {
	if index < 0 || index >= s.top {
		panic("stack: index out of bounds")
	}
	return s.data[index]
}

// Set overwrites the cell at an absolute index.
func (s *Stack) Set(index int, v value.Cell) {
	if index < 0 || index >= s.top {
		panic("stack: index out of bounds")
	}
	s.data[index] = v
}

// Peek returns the top cell without removing it.
func (s *Stack) Peek() value.Cell {
	if s.top <= 0 {
		panic("stack: underflow")
	}
	return s.data[s.top-1]
}

// Top returns the index of the next free slot -- equivalently, the number
// of cells currently on the stack. Argument fulfillment snapshots this as
// "dsp_orig" before pre-scanning a path-call's refinements (spec.md §4.4).
func (s *Stack) Top() int { return s.top }

// TruncateTo drops every cell above index, used when a call's refinement
// scan is done and its scratch entries are no longer needed.
func (s *Stack) TruncateTo(index int) {
	if index < 0 || index > s.top {
		panic("stack: truncate out of bounds")
	}
	s.top = index
}

func (s *Stack) Empty() bool { return s.top == 0 }

// Slice returns the live cells between [from, s.top) without copying,
// used by the pickups phase to scan collected refinement words in push
// order.
func (s *Stack) Slice(from int) []value.Cell {
	return s.data[from:s.top]
}
