// Package bind implements variable binding contexts for the evaluator.
//
// This is the teacher's internal/frame package (viro-lang-viro) renamed:
// the teacher called its word->value binding table "Frame", which collides
// with spec.md's use of "Frame" for the evaluator's per-invocation state
// (output cell, cursors, refine pointer...). What the teacher named Frame
// is what spec.md's GLOSSARY calls a binding resolved against a
// "Specifier" -- so it is renamed Context here, and internal/frame is
// reserved for the real per-invocation Frame struct spec.md describes.
//
// Local-by-default scoping is kept from the teacher: assigning a
// previously-unbound word inside a context creates a new local binding in
// that context, never in some implicit global.
package bind

import "github.com/renc-lang/rcore/internal/value"

var _ value.Context = (*Context)(nil)

// Context implements value.Context: parallel Words/Values arrays plus a
// parent pointer, grounded on the teacher's Frame struct
// (internal/frame/frame.go).
type Context struct {
	words  []string
	values []value.Cell
	parent *Context
	index  int
	name   string
}

// NewContext creates an empty context with the given lexical parent (nil
// at the top level).
func NewContext(parent *Context) *Context {
	return &Context{parent: parent, index: -1}
}

// NewContextWithCapacity pre-allocates binding slots, used for function
// call contexts where the parameter count is known up front (mirrors the
// teacher's NewFrameWithCapacity).
func NewContextWithCapacity(parent *Context, capacity int) *Context {
	return &Context{
		words:  make([]string, 0, capacity),
		values: make([]value.Cell, 0, capacity),
		parent: parent,
		index:  -1,
	}
}

// Bind adds or updates a local binding. Local-by-default: a fresh symbol
// always becomes a new binding in THIS context, never in an ancestor.
func (c *Context) Bind(symbol string, val value.Cell) {
	for i, w := range c.words {
		if w == symbol {
			c.values[i] = val
			return
		}
	}
	c.words = append(c.words, symbol)
	c.values = append(c.values, val)
}

// Get looks up symbol in this context ONLY (no parent walk -- callers that
// want lexical lookup use eval.Evaluator.Lookup, which walks the chain).
func (c *Context) Get(symbol string) (value.Cell, bool) {
	for i, w := range c.words {
		if w == symbol {
			return c.values[i], true
		}
	}
	return value.Null(), false
}

// Set updates an existing binding; it does not create one (use Bind).
func (c *Context) Set(symbol string, val value.Cell) bool {
	for i, w := range c.words {
		if w == symbol {
			c.values[i] = val
			return true
		}
	}
	return false
}

func (c *Context) HasWord(symbol string) bool {
	for _, w := range c.words {
		if w == symbol {
			return true
		}
	}
	return false
}

// Parent returns the lexical parent as a value.Context, or a typed-nil-safe
// nil interface when there is none (Go interfaces holding a nil *Context
// would otherwise compare non-nil, so this returns a bare nil).
func (c *Context) Parent() value.Context {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

// ParentContext returns the concrete *Context parent (nil at the root),
// used internally where callers need the concrete type.
func (c *Context) ParentContext() *Context { return c.parent }

func (c *Context) Index() int        { return c.index }
func (c *Context) SetIndex(idx int)  { c.index = idx }
func (c *Context) Name() string      { return c.name }
func (c *Context) SetName(n string)  { c.name = n }
func (c *Context) Words() []string   { return c.words }
func (c *Context) Count() int        { return len(c.words) }

// Clone performs a shallow copy: words/values are copied but cell payloads
// are shared, used for closure capture (mirrors the teacher's Clone).
func (c *Context) Clone() *Context {
	words := make([]string, len(c.words))
	values := make([]value.Cell, len(c.values))
	copy(words, c.words)
	copy(values, c.values)
	return &Context{words: words, values: values, parent: c.parent, index: -1, name: c.name}
}
