// Package feed implements the evaluator's forward-only value stream: the
// single abstraction the Evaluator Loop pulls cells from, whether they came
// from a parsed block, a user-typed REPL line, or (eventually) a generator.
//
// Grounded on the teacher's own (vals []core.Value, idx *int) threading
// pattern used throughout internal/eval/evaluator.go (Do_Blk,
// evalExpressionFromTokens, collectFunctionArgsWithInfix all pass a slice
// and a cursor by hand). Feed promotes that ad hoc pair into its own type
// because spec.md's lookahead machinery (§4.2) needs more than a bare
// index: a one-token lookback slot, a cached "already looked up this word"
// slot invalidated on mutation, and flags that travel with the cursor
// rather than being re-derived at each call site.
package feed

import "github.com/renc-lang/rcore/internal/value"

// Feed is a forward-only cursor over a fixed slice of cells (blocks are
// immutable enough, for this evaluator's purposes, that a index is safe to
// hold across recursive Do_Next calls -- unlike the teacher's mutable
// block.Elements, which is why evalSetPath mutates in place but nothing
// here does while a Feed walks it).
type Feed struct {
	vals      []value.Cell
	index     int
	specifier value.Context

	// lookback is the cell most recently fetched, exposed so the lookahead
	// engine can quote it backward into an enfix operator's left argument
	// (spec.md §4.2 "Lookahead").
	lookback value.Cell
	hasLookback bool

	// gotten caches the result of looking up the word at the CURRENT
	// cursor position, so a lookahead peek and the eventual dispatch don't
	// do the symbol lookup twice. Invalidated whenever the cursor moves or
	// a Set/Bind could have changed the answer.
	gotten    value.Cell
	gottenOK  bool
	gottenFor int // index this cache entry is valid for; -1 when invalid

	Flags FeedFlags
}

// FeedFlags are feed-level flags distinct from FrameFlags: they describe
// constraints on the NEXT fetch, not the current call's fulfillment state.
type FeedFlags uint8

const (
	// NoLookahead suppresses enfix lookahead for the next fetch (spec.md
	// §4.2 "tight" parameters and tight-evaluated operators set this).
	NoLookahead FeedFlags = 1 << iota
	// DeferringEnfix marks that an enfix action was seen but its
	// left-hand absorption was deferred once already (spec.md §4.2
	// "Deferral rule") -- a second deferral opportunity in the same slot
	// is an error, not a second deferral.
	DeferringEnfix
	// BarrierHit records that a `|` evaluation barrier was crossed,
	// blocking further argument gathering until the frame completes.
	BarrierHit
)

func (f FeedFlags) Has(bit FeedFlags) bool { return f&bit != 0 }

// New creates a feed over vals, bound against specifier.
func New(vals []value.Cell, specifier value.Context) *Feed {
	return &Feed{vals: vals, specifier: specifier, gottenFor: -1}
}

// AtEnd reports whether the cursor has exhausted the underlying slice.
func (f *Feed) AtEnd() bool { return f.index >= len(f.vals) }

// Peek returns the cell at the cursor without consuming it, or an end cell
// if the feed is exhausted (spec.md's End kind exists precisely so callers
// don't need a separate has-more check everywhere).
func (f *Feed) Peek() value.Cell {
	if f.AtEnd() {
		return value.End()
	}
	return f.vals[f.index].WithSpecifier(f.specifier)
}

// PeekAt looks ahead n cells past the cursor without consuming anything.
// The lookahead engine does not call it; it only ever inspects Peek.
func (f *Feed) PeekAt(n int) value.Cell {
	idx := f.index + n
	if idx < 0 || idx >= len(f.vals) {
		return value.End()
	}
	return f.vals[idx].WithSpecifier(f.specifier)
}

// Fetch consumes and returns the cell at the cursor, advancing it and
// updating lookback. Returns End() past the last cell.
func (f *Feed) Fetch() value.Cell {
	cur := f.Peek()
	if !f.AtEnd() {
		f.index++
	}
	f.lookback = cur
	f.hasLookback = true
	f.InvalidateGotten()
	return cur
}

// Lookback returns the most recently fetched cell. dispatchEnfix does not
// use it: the left-hand value it steals is the already-evaluated result
// passed in by lookahead.
func (f *Feed) Lookback() (value.Cell, bool) { return f.lookback, f.hasLookback }

// Index exposes the raw cursor position, used for error "Near" windows.
func (f *Feed) Index() int { return f.index }

// Specifier returns the binding context words fetched from this feed
// resolve against.
func (f *Feed) Specifier() value.Context { return f.specifier }

// SetSpecifier rebinds the feed, used when entering a nested block whose
// words carry their own lexical context.
func (f *Feed) SetSpecifier(ctx value.Context) { f.specifier = ctx }

// Gotten returns the cached lookup result for the cell at the current
// cursor position, if any was cached and the cursor has not moved since.
func (f *Feed) Gotten() (value.Cell, bool) {
	if f.gottenFor != f.index {
		return value.Void(), false
	}
	return f.gotten, f.gottenOK
}

// SetGotten caches a lookup result for the cell at the current cursor
// position (spec.md §4.2's "cached variable-lookup slot").
func (f *Feed) SetGotten(v value.Cell, ok bool) {
	f.gotten = v
	f.gottenOK = ok
	f.gottenFor = f.index
}

// InvalidateGotten drops the lookup cache, required whenever the cursor
// moves or an assignment could have changed what a word resolves to.
func (f *Feed) InvalidateGotten() { f.gottenFor = -1 }

// Vals exposes the backing slice, used only for error "Near" context
// windows (verror.CaptureNear) -- evaluation itself never indexes it
// directly, always going through Peek/Fetch.
func (f *Feed) Vals() []value.Cell { return f.vals }
