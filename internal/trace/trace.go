// Package trace provides structured tracing of evaluator steps: one JSON
// event per action dispatch (and per uncaught throw out of a dispatch),
// optionally redirected to a rotating file.
//
// Adapted from the teacher's internal/trace package -- the event shape and
// the rotation-via-lumberjack plumbing are kept; the port/object-lifecycle
// helper functions are replaced with evaluator-step helpers (word lookup,
// action dispatch, throw unwind) since this interpreter core has no port
// or object subsystem.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Session manages trace event collection and output.
type Session struct {
	mu            sync.Mutex
	enabled       atomic.Bool
	sink          io.Writer
	logger        *lumberjack.Logger
	atomicFilters atomic.Value
	stepCounter   int64
	callback      atomic.Value
}

// Filters controls which events are emitted.
type Filters struct {
	IncludeWords []string
	ExcludeWords []string
	MinDuration  time.Duration

	Verbose     bool
	StepLevel   int // 0=calls only, 1=expressions, 2=all
	IncludeArgs bool
	MaxDepth    int
}

// Event is a single trace record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Value     string    `json:"value"`
	Word      string    `json:"word"`
	Duration  int64     `json:"duration"`

	EventType  string            `json:"event_type,omitempty"`
	Step       int64             `json:"step,omitempty"`
	Depth      int               `json:"depth,omitempty"`
	Position   int               `json:"position,omitempty"`
	Expression string            `json:"expression,omitempty"`
	Args       map[string]string `json:"args,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Global is the active trace session (singleton), mirroring the teacher's
// GlobalTraceSession -- the evaluator checks it on every step so tracing
// costs nothing when disabled.
var Global *Session

// Init initializes the global trace session. traceFile == "" traces to
// stderr; otherwise output rotates through lumberjack at maxSizeMB.
func Init(traceFile string, maxSizeMB int) error {
	var sink io.Writer = os.Stderr
	var logger *lumberjack.Logger
	if traceFile != "" {
		logger = &lumberjack.Logger{
			Filename:   traceFile,
			MaxSize:    maxSizeMB,
			MaxBackups: 5,
			MaxAge:     0,
			Compress:   true,
		}
		sink = logger
	}
	ts := &Session{sink: sink, logger: logger}
	ts.enabled.Store(false)
	ts.atomicFilters.Store(&Filters{})
	Global = ts
	return nil
}

// InitSilent initializes tracing with output discarded -- used when only
// the step counter or a callback (profiling) is wanted.
func InitSilent() {
	ts := &Session{sink: io.Discard}
	ts.enabled.Store(false)
	ts.atomicFilters.Store(&Filters{})
	Global = ts
}

func (ts *Session) Enable(f Filters) {
	ts.atomicFilters.Store(&f)
	ts.enabled.Store(true)
}

func (ts *Session) Disable() { ts.enabled.Store(false) }

func (ts *Session) IsEnabled() bool { return ts != nil && ts.enabled.Load() }

func (ts *Session) Emit(event Event) {
	if !ts.enabled.Load() {
		return
	}
	filters := ts.atomicFilters.Load().(*Filters)
	if len(filters.IncludeWords) > 0 && !slices.Contains(filters.IncludeWords, event.Word) {
		return
	}
	if slices.Contains(filters.ExcludeWords, event.Word) {
		return
	}
	if filters.MinDuration > 0 && time.Duration(event.Duration) < filters.MinDuration {
		return
	}
	if cb := ts.callback.Load(); cb != nil {
		cb.(func(Event))(event)
	}
	data, err := json.Marshal(event)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace serialization error: %v\n", err)
		return
	}
	ts.mu.Lock()
	fmt.Fprintf(ts.sink, "%s\n", data)
	ts.mu.Unlock()
}

func (ts *Session) Close() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.logger != nil {
		return ts.logger.Close()
	}
	return nil
}

func (ts *Session) NextStep() int64 { return atomic.AddInt64(&ts.stepCounter, 1) }

func (ts *Session) ResetStepCounter() { atomic.StoreInt64(&ts.stepCounter, 0) }

func (ts *Session) ShouldTraceExpression() bool {
	return ts.atomicFilters.Load().(*Filters).StepLevel >= 1
}

func (ts *Session) ShouldTraceAtDepth(depth int) bool {
	filters := ts.atomicFilters.Load().(*Filters)
	if filters.MaxDepth == 0 {
		return true
	}
	return depth <= filters.MaxDepth
}

func (ts *Session) IncludeArgs() bool { return ts.atomicFilters.Load().(*Filters).IncludeArgs }

// SetCallback registers a lock-free hook invoked before JSON serialization,
// so a caller can aggregate events without parsing the trace stream back
// out. Nothing in this module registers one.
func (ts *Session) SetCallback(cb func(Event)) { ts.callback.Store(cb) }

// EmitWord emits a word-evaluation event. The evaluator does not call it;
// word fetches produce no trace events.
func EmitWord(word, val string, dur time.Duration, depth int) {
	if !Global.IsEnabled() {
		return
	}
	Global.Emit(Event{
		Timestamp: time.Now(),
		EventType: "eval",
		Word:      word,
		Value:     val,
		Duration:  dur.Nanoseconds(),
		Depth:     depth,
		Step:      Global.NextStep(),
	})
}

// EmitDispatch emits an action-dispatch event -- one per fulfilled call,
// whether the action was native or user-defined.
func EmitDispatch(name string, args map[string]string, dur time.Duration, depth int, err error) {
	if !Global.IsEnabled() {
		return
	}
	ev := Event{
		Timestamp: time.Now(),
		EventType: "call",
		Word:      name,
		Duration:  dur.Nanoseconds(),
		Depth:     depth,
		Step:      Global.NextStep(),
	}
	if Global.IncludeArgs() {
		ev.Args = args
	}
	if err != nil {
		ev.Error = err.Error()
	}
	Global.Emit(ev)
}

// EmitThrow emits a non-local-exit event when a Thrown value unwinds past
// a frame boundary.
func EmitThrow(label string, depth int) {
	if !Global.IsEnabled() {
		return
	}
	Global.Emit(Event{
		Timestamp: time.Now(),
		EventType: "throw",
		Word:      label,
		Depth:     depth,
		Step:      Global.NextStep(),
	})
}
