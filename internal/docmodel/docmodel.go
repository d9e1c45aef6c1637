// Package docmodel records a one-line doc string per native action and
// looks it up by name, grounded on the teacher's internal/docmodel package
// but trimmed from a category-tree registry sized for a full standard
// library down to a flat map -- this module's native set is about twenty
// actions (spec.md's explicit "not a stdlib" Non-goal), so a tree adds
// structure with nothing to organize. The REPL has no help command that
// reads it.
package docmodel

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one native's documentation: its name, a one-line summary, and
// its parameter names in declaration order (matching value.Action.Params).
type Entry struct {
	Name    string
	Summary string
	Params  []string
}

// Registry is a name-keyed doc-entry table, filled through Add (Builtins
// builds one); nothing populates one at startup.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry returns an empty registry ready for Add calls.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add records one doc entry, keyed by name.
func (r *Registry) Add(e Entry) {
	if _, exists := r.entries[e.Name]; !exists {
		r.order = append(r.order, e.Name)
	}
	r.entries[e.Name] = e
}

// Lookup returns the doc entry for name, if any.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Categories lists every registered name sorted alphabetically, joined
// with ", ".
func (r *Registry) Categories() string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Usage formats a one-line "name param1 param2 -- summary" string for
// name, or reports that name is undocumented.
func (r *Registry) Usage(name string) string {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Sprintf("%s: no documentation available", name)
	}
	if len(e.Params) == 0 {
		return fmt.Sprintf("%s -- %s", e.Name, e.Summary)
	}
	return fmt.Sprintf("%s %s -- %s", e.Name, strings.Join(e.Params, " "), e.Summary)
}

// Builtins returns a registry describing fourteen of the natives
// internal/native.Register binds, with their parameter lists. clamp, bump,
// boxed, variadic-sum, throw and catch have no entry.
func Builtins() *Registry {
	r := NewRegistry()
	r.Add(Entry{Name: "+", Summary: "add two numbers (enfix)", Params: []string{"left", "right"}})
	r.Add(Entry{Name: "-", Summary: "subtract two numbers (enfix)", Params: []string{"left", "right"}})
	r.Add(Entry{Name: "*", Summary: "multiply two numbers (enfix)", Params: []string{"left", "right"}})
	r.Add(Entry{Name: "/", Summary: "divide two numbers (enfix)", Params: []string{"left", "right"}})
	r.Add(Entry{Name: "if", Summary: "run branch when condition is truthy", Params: []string{"condition", "branch"}})
	r.Add(Entry{Name: "either", Summary: "run one of two branches", Params: []string{"condition", "true-branch", "false-branch"}})
	r.Add(Entry{Name: "then", Summary: "run branch unless the left value is null (enfix)", Params: []string{"left", "branch"}})
	r.Add(Entry{Name: "else", Summary: "run branch only if the left value is null (enfix)", Params: []string{"left", "branch"}})
	r.Add(Entry{Name: "quote", Summary: "return the argument escaped one level, unevaluated", Params: []string{"value"}})
	r.Add(Entry{Name: "comment", Summary: "consume an argument, produce no value", Params: []string{"value"}})
	r.Add(Entry{Name: "first", Summary: "the first element of a block or string", Params: []string{"series"}})
	r.Add(Entry{Name: "do", Summary: "evaluate a block's contents to completion", Params: []string{"value"}})
	r.Add(Entry{Name: "print", Summary: "write a string's text, or any other value's molded form, to stdout", Params: []string{"value"}})
	r.Add(Entry{Name: "func", Summary: "build a user-defined action from a param block and a body block", Params: []string{"spec", "body"}})
	return r
}
