package value

import "fmt"

// compactQuoteMax is the deepest escape level that stays encoded on the
// base cell's quoteDepth field before falling back to a heap-escaped
// QuotedEscape payload. spec.md §3/§9: "Quoted values at low escape levels
// encode the escape count in the kind byte itself (an optimization)".
const compactQuoteMax = 3

// Cell is the uniform value representation. Copied by value at call
// boundaries (the way the evaluator passes cells between output, spare,
// and argument slots), matching spec.md's "4-machine-word cell" intent
// more closely than a pointer-per-value scheme would.
type Cell struct {
	kind       Kind
	flags      uint16
	quoteDepth uint8 // 0 = not quoted; see compactQuoteMax
	payload    any
	specifier  Context // binding context for words/blocks; nil = unbound
}

// QuotedEscape is the heap-escaped form used once quoting depth exceeds
// compactQuoteMax.
type QuotedEscape struct {
	Depth int
	Base  Cell
}

// Escape wraps c with one more level of quoting. Below compactQuoteMax this
// just increments quoteDepth in place; at the threshold it escalates to a
// heap-escaped QuotedEscape payload (spec.md §4.3 "quoted (compact form,
// kind >= a threshold)" vs "quoted (heap form)").
func (c Cell) Escape() Cell {
	if c.kind == KindQuoted {
		esc := c.payload.(*QuotedEscape)
		return Cell{kind: KindQuoted, flags: c.flags, payload: &QuotedEscape{Depth: esc.Depth + 1, Base: esc.Base}, specifier: c.specifier}
	}
	if c.quoteDepth < compactQuoteMax {
		c2 := c
		c2.quoteDepth++
		return c2
	}
	base := c
	base.quoteDepth = 0
	return Cell{kind: KindQuoted, flags: c.flags, payload: &QuotedEscape{Depth: compactQuoteMax + 1, Base: base}, specifier: c.specifier}
}

// Unescape removes one level of quoting. Panics if c is not quoted; callers
// must check QuoteLevel() first (mirrors spec.md §4.3's two quoted-dispatch
// branches).
func (c Cell) Unescape() Cell {
	if c.kind == KindQuoted {
		esc := c.payload.(*QuotedEscape)
		if esc.Depth-1 <= compactQuoteMax {
			base := esc.Base
			base.quoteDepth = uint8(esc.Depth - 1)
			return base
		}
		return Cell{kind: KindQuoted, flags: c.flags, payload: &QuotedEscape{Depth: esc.Depth - 1, Base: esc.Base}, specifier: c.specifier}
	}
	if c.quoteDepth == 0 {
		panic("value: Unescape of non-quoted cell")
	}
	c2 := c
	c2.quoteDepth--
	return c2
}

// QuoteLevel returns how many levels of quoting wrap this cell.
func (c Cell) QuoteLevel() int {
	if c.kind == KindQuoted {
		return c.payload.(*QuotedEscape).Depth
	}
	return int(c.quoteDepth)
}

// Unquoted returns the innermost non-quoted cell and its total quote
// level, used by <dequote>/<requote> parameter handling (spec.md §4.4 step
// 4, §4.5 "Requote").
func (c Cell) Unquoted() (Cell, int) {
	level := c.QuoteLevel()
	cur := c
	for cur.QuoteLevel() > 0 {
		cur = cur.Unescape()
	}
	return cur, level
}

// Requote re-applies `level` levels of quoting to c.
func Requote(c Cell, level int) Cell {
	for range level {
		c = c.Escape()
	}
	return c
}

// Kind returns KindQuoted whenever c carries any quote level (compact or
// heap), so evaluator dispatch can route to the quoted-handling branches of
// spec.md §4.3 uniformly. Use RawKind/Unquoted to see underneath.
func (c Cell) Kind() Kind {
	if c.quoteDepth > 0 || c.kind == KindQuoted {
		return KindQuoted
	}
	return c.kind
}

// RawKind returns the underlying kind even when quoted at the compact
// level (i.e. ignores quoteDepth). KindQuoted heap cells still report
// KindQuoted since their base kind is nested in the payload.
func (c Cell) RawKind() Kind { return c.kind }

func (c Cell) Flags() uint16     { return c.flags }
func (c Cell) Payload() any      { return c.payload }
func (c Cell) Specifier() Context { return c.specifier }

// WithFlags returns a copy of c with flags replaced. Cells are immutable
// value types; flag changes produce a new cell, mirroring how the
// evaluator copies cells between output/spare/arg slots with a flag delta.
func (c Cell) WithFlags(f uint16) Cell { c2 := c; c2.flags = f; return c2 }

// HasFlag reports whether all bits in f are set.
func (c Cell) HasFlag(f uint16) bool { return c.flags&f == f }

// SetFlag returns a copy of c with bit f set.
func (c Cell) SetFlag(f uint16) Cell { c2 := c; c2.flags |= f; return c2 }

// ClearFlag returns a copy of c with bit f cleared.
func (c Cell) ClearFlag(f uint16) Cell { c2 := c; c2.flags &^= f; return c2 }

// WithSpecifier returns a copy of c bound to the given context.
func (c Cell) WithSpecifier(ctx Context) Cell { c2 := c; c2.specifier = ctx; return c2 }

func (c Cell) Equal(other Cell) bool {
	if c.Kind() != other.Kind() {
		return false
	}
	if c.Kind() == KindQuoted {
		a, al := c.Unquoted()
		b, bl := other.Unquoted()
		return al == bl && a.Equal(b)
	}
	switch c.kind {
	case KindEnd, KindNull, KindVoid, KindBlank:
		return true
	case KindLogic:
		return c.payload.(bool) == other.payload.(bool)
	case KindInteger:
		return c.payload.(int64) == other.payload.(int64)
	case KindWord, KindSetWord, KindGetWord, KindIssue:
		return c.payload.(string) == other.payload.(string)
	case KindAction:
		return c.payload.(*Action) == other.payload.(*Action)
	case KindFrame:
		return c.payload == other.payload
	case KindDecimal:
		return c.decimalEqual(other)
	case KindString:
		return c.stringEqual(other)
	case KindBinary:
		return c.binaryEqual(other)
	default:
		if IsBlockKind(c.kind) || IsPathKind(c.kind) {
			return c.seriesEqual(other)
		}
	}
	return false
}

func (c Cell) String() string { return Mold(c) }

// End, Null, Void, Blank are the parameterless singleton kinds.
func End() Cell   { return Cell{kind: KindEnd} }
func Null() Cell  { return Cell{kind: KindNull} }
func Void() Cell  { return Cell{kind: KindVoid} }
func Blank() Cell { return Cell{kind: KindBlank} }

func IsEnd(c Cell) bool   { return c.Kind() == KindEnd }
func IsNull(c Cell) bool  { return c.Kind() == KindNull }
func IsVoid(c Cell) bool  { return c.Kind() == KindVoid }
func IsBlank(c Cell) bool { return c.Kind() == KindBlank }

func Logic(b bool) Cell    { return Cell{kind: KindLogic, payload: b} }
func Integer(i int64) Cell { return Cell{kind: KindInteger, payload: i} }

func AsLogic(c Cell) (bool, bool) {
	if c.Kind() != KindLogic {
		return false, false
	}
	return c.payload.(bool), true
}

func AsInteger(c Cell) (int64, bool) {
	if c.Kind() != KindInteger {
		return 0, false
	}
	return c.payload.(int64), true
}

// IsTruthy implements spec.md's conditional-truth rule: false and none
// (null/blank play that role here) are falsy, everything else -- including
// 0, "", [] -- is truthy.
func IsTruthy(c Cell) bool {
	switch c.Kind() {
	case KindNull, KindBlank:
		return false
	case KindLogic:
		b, _ := AsLogic(c)
		return b
	default:
		return true
	}
}

func assertKind(c Cell, k Kind, where string) {
	if c.Kind() != k {
		panic(fmt.Sprintf("value: %s expected %s, got %s", where, KindName(k), KindName(c.Kind())))
	}
}
