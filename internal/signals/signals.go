// Package signals implements the evaluator's periodic signal-check counter
// (spec.md §5): the evaluator decrements a budget on every step and, when
// it reaches zero, calls a pluggable hook before resetting -- the hook
// decides whether to return an interrupt error (Ctrl-C, a cooperative
// deadline, a host-imposed step quota) or let execution continue.
//
// The teacher has no equivalent -- its evaluator never yielded control
// mid-run -- so this is grounded on the general Go idiom the rest of the
// pack uses for cancellation (context.Context), adapted into a counter
// because spec.md calls for a fixed-N-steps check rather than a channel
// select on every single step (which would dominate runtime on tight
// loops).
package signals

import "github.com/renc-lang/rcore/internal/core"

// Hook is called every N evaluator steps. Returning a non-nil error aborts
// the in-progress evaluation, propagated the same way any other evaluator
// error is.
type Hook func() error

// Counter implements core.Signaler.
type Counter struct {
	every  int
	budget int
	hook   Hook
	total  int64
}

// NewCounter creates a signal counter that invokes hook every `every`
// evaluator steps. every <= 0 or a nil hook disables checking entirely
// (Tick only counts and always returns nil).
func NewCounter(every int, hook Hook) *Counter {
	return &Counter{every: every, budget: every, hook: hook}
}

var _ core.Signaler = (*Counter)(nil)

// Tick is called once per evaluator step (spec.md §5 "a periodic
// signal-check counter").
func (c *Counter) Tick() error {
	c.total++
	if c.every <= 0 || c.hook == nil {
		return nil
	}
	c.budget--
	if c.budget > 0 {
		return nil
	}
	c.budget = c.every
	return c.hook()
}

// Reset restores the full budget. Nothing outside this package's tests
// calls it.
func (c *Counter) Reset() { c.budget = c.every }

// Total returns the number of evaluator steps this counter has observed
// since it was created, feeding internal/profile's --profile report.
func (c *Counter) Total() int64 { return c.total }
