// Package debug provides breakpoint and stepping infrastructure for the
// evaluator, adapted from the teacher's internal/debug package onto the
// Cell/core.Evaluator vocabulary of this repo.
package debug

import (
	"fmt"
	"time"

	"github.com/renc-lang/rcore/internal/core"
	"github.com/renc-lang/rcore/internal/trace"
	"github.com/renc-lang/rcore/internal/value"
)

// Debugger manages breakpoint state and single-step control.
type Debugger struct {
	mu          chan struct{} // 1-buffered mutex, avoids importing sync for one field set
	breakpoints map[string]int
	nextID      int
	mode        Mode
	stepping    bool
	stepState   StepState
}

// StepState tracks the paused evaluator position, if any.
type StepState struct {
	Paused      bool
	WaitChan    chan struct{}
	CurrentExpr value.Cell
	CurrentPos  int
}

type Mode int

const (
	ModeOff Mode = iota
	ModeActive
	ModeStepping
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeActive:
		return "active"
	case ModeStepping:
		return "stepping"
	default:
		return "unknown"
	}
}

// Global is the active debugger instance, checked by the evaluator's
// prefix dispatch (HandleBreakpoint) before each prefix action call.
var Global *Debugger

func Init() {
	Global = &Debugger{
		mu:          make(chan struct{}, 1),
		breakpoints: make(map[string]int),
		nextID:      1,
		stepState:   StepState{WaitChan: make(chan struct{}, 1)},
	}
}

func (d *Debugger) lock()   { d.mu <- struct{}{} }
func (d *Debugger) unlock() { <-d.mu }

func (d *Debugger) SetBreakpoint(word string) int {
	d.lock()
	defer d.unlock()
	id := d.nextID
	d.nextID++
	d.breakpoints[word] = id
	d.mode = ModeActive
	return id
}

func (d *Debugger) RemoveBreakpoint(word string) bool {
	d.lock()
	defer d.unlock()
	if _, ok := d.breakpoints[word]; ok {
		delete(d.breakpoints, word)
		if len(d.breakpoints) == 0 && !d.stepping {
			d.mode = ModeOff
		}
		return true
	}
	return false
}

func (d *Debugger) HasBreakpoint(word string) bool {
	d.lock()
	defer d.unlock()
	_, ok := d.breakpoints[word]
	return ok
}

func (d *Debugger) EnableStepping() {
	d.lock()
	defer d.unlock()
	d.mode = ModeStepping
	d.stepping = true
}

func (d *Debugger) DisableStepping() {
	d.lock()
	defer d.unlock()
	d.stepping = false
	if len(d.breakpoints) == 0 {
		d.mode = ModeOff
	} else {
		d.mode = ModeActive
	}
}

func (d *Debugger) IsStepping() bool {
	d.lock()
	defer d.unlock()
	return d.stepping
}

func (d *Debugger) Mode() Mode {
	d.lock()
	defer d.unlock()
	return d.mode
}

func (d *Debugger) Enable() {
	d.lock()
	defer d.unlock()
	d.mode = ModeActive
}

func (d *Debugger) Disable() {
	d.lock()
	defer d.unlock()
	d.mode = ModeOff
	d.breakpoints = make(map[string]int)
	d.stepping = false
}

// HandleBreakpoint checks for and reports a breakpoint hit on word, called
// by the evaluator before dispatching it.
func (d *Debugger) HandleBreakpoint(word string) {
	if !d.HasBreakpoint(word) {
		return
	}
	if trace.Global != nil && trace.Global.IsEnabled() {
		trace.Global.Emit(trace.Event{
			Timestamp: time.Now(),
			EventType: "debug",
			Word:      "debug",
			Value:     fmt.Sprintf("breakpoint hit: %s", word),
		})
	}
}

// PauseExecution blocks the calling goroutine at the current expression
// until ResumeExecution is called. Neither the evaluator nor the REPL
// calls it.
func (d *Debugger) PauseExecution(expr value.Cell, pos int) {
	d.lock()
	d.stepState.Paused = true
	d.stepState.CurrentExpr = expr
	d.stepState.CurrentPos = pos
	d.unlock()

	<-d.stepState.WaitChan

	d.lock()
	d.stepState.Paused = false
	d.unlock()
}

func (d *Debugger) ResumeExecution() {
	select {
	case d.stepState.WaitChan <- struct{}{}:
	default:
	}
}

func (d *Debugger) ShouldPause() bool {
	d.lock()
	defer d.unlock()
	return d.stepping
}

func (d *Debugger) IsPaused() bool {
	d.lock()
	defer d.unlock()
	return d.stepState.Paused
}

func (d *Debugger) GetCurrentStepInfo() (value.Cell, int, bool) {
	d.lock()
	defer d.unlock()
	return d.stepState.CurrentExpr, d.stepState.CurrentPos, d.stepState.Paused
}

// GetCallStack returns the live call stack from an evaluator, or an empty
// slice for a nil evaluator.
func (d *Debugger) GetCallStack(ev core.Evaluator) []string {
	if ev == nil {
		return []string{}
	}
	return ev.Callstack()
}
