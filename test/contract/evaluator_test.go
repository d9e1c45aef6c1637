// Package contract checks the evaluator directly against spec.md's own
// worked examples and invariants -- one table-driven test per invariant,
// grounded on the teacher's table-driven-subtests texture (stdlib
// testing only, per SPEC_FULL.md §1.4).
package contract

import (
	"testing"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

func errID(t *testing.T, err error) string {
	t.Helper()
	verr, ok := err.(*verror.Error)
	if !ok {
		t.Fatalf("expected a *verror.Error, got %T (%v)", err, err)
	}
	return verr.ID
}

func eval1(t *testing.T, source string) (value.Cell, error) {
	t.Helper()
	root := bind.NewContext(nil)
	native.Register(root)
	ev := eval.New(signals.NewCounter(0, nil))
	values, err := parse.Parse(source, root)
	if err != nil {
		return value.Void(), err
	}
	return ev.EvalToEnd(values, root)
}

// TestInvisibleActionsDoNotBreakAChain checks spec.md §4.5's invisible
// dispatch: a `comment` statement after an expression consumes its own
// argument but leaves the running result of the block untouched.
func TestInvisibleActionsDoNotBreakAChain(t *testing.T) {
	result, err := eval1(t, `1 + 1 comment "note"`)
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 2 {
		t.Fatalf("expected invisible comment to leave result at 2, got %v", result)
	}
}

// TestQuoteEscapesOneLevel checks spec.md §3/§9's quoted-value escape
// levels: `quote` returns its hard-quoted argument one level more quoted
// than it arrived, rather than evaluating it.
func TestQuoteEscapesOneLevel(t *testing.T) {
	result, err := eval1(t, `quote (1 + 1)`)
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	if result.Kind() != value.KindQuoted {
		t.Fatalf("expected a quoted cell, got kind %v", result.Kind())
	}
}

// TestConditionalTruthRule checks spec.md's conditional-truth rule: only
// false and blank/null are falsy, every other value (including 0 and "")
// is truthy.
func TestConditionalTruthRule(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int64
	}{
		{"zero-is-truthy", "if 0 [1] else [2]", 1},
		{"empty-string-is-truthy", `if "" [1] else [2]`, 1},
		{"false-is-falsy", "if false [1] else [2]", 2},
		{"null-is-falsy", "if null [1] else [2]", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := eval1(t, tc.source)
			if err != nil {
				t.Fatalf("eval(%q) returned error: %v", tc.source, err)
			}
			got, ok := value.AsInteger(result)
			if !ok || got != tc.want {
				t.Fatalf("got %v, want %d", result, tc.want)
			}
		})
	}
}

// TestDivisionByZeroErrors checks spec.md's arithmetic error surface
// directly (an evaluator invariant, not just a native unit test).
func TestDivisionByZeroErrors(t *testing.T) {
	if _, err := eval1(t, "1 / 0"); err == nil {
		t.Fatal("expected an error for division by zero")
	}
}

// TestUndefinedWordErrors checks spec.md's "no value" evaluator error for
// a word with no binding anywhere in the lexical chain.
func TestUndefinedWordErrors(t *testing.T) {
	if _, err := eval1(t, "this-word-is-never-bound"); err == nil {
		t.Fatal("expected a no-value error for an undefined word")
	}
}

// TestRefinementRevocationAndCommutativity checks spec.md §4.4 step 8's
// revoke-on-null rule and spec.md §8's refinement commutativity law: the
// order refinements are named on the calling path must not affect the
// result, except when a later-declared refinement has already committed to
// a value before an earlier one revokes to null.
func TestRefinementRevocationAndCommutativity(t *testing.T) {
	t.Run("commutative", func(t *testing.T) {
		a, err := eval1(t, "clamp/floor/ceiling 5 1 10")
		if err != nil {
			t.Fatalf("eval returned error: %v", err)
		}
		b, err := eval1(t, "clamp/ceiling/floor 5 10 1")
		if err != nil {
			t.Fatalf("eval returned error: %v", err)
		}
		ai, _ := value.AsInteger(a)
		bi, _ := value.AsInteger(b)
		if ai != bi {
			t.Fatalf("clamp/floor/ceiling and clamp/ceiling/floor disagree: %v vs %v", ai, bi)
		}
	})

	t.Run("plain revoke", func(t *testing.T) {
		result, err := eval1(t, "clamp/floor/ceiling 15 null 10")
		if err != nil {
			t.Fatalf("eval returned error: %v", err)
		}
		i, ok := value.AsInteger(result)
		if !ok || i != 10 {
			t.Fatalf("expected revoked floor to leave only the ceiling bound, got %v", result)
		}
	})

	t.Run("revoke order error", func(t *testing.T) {
		_, err := eval1(t, "clamp/ceiling/floor 5 10 null")
		if err == nil {
			t.Fatal("expected a revoke-order error")
		}
		if id := errID(t, err); id != verror.ErrIDRevokeOrder {
			t.Fatalf("expected %s, got %s", verror.ErrIDRevokeOrder, id)
		}
	})
}

// TestDequoteRequote checks that a <dequote> hard-quote parameter strips
// escape levels before dispatch and an ActionRequote dispatcher's result
// gets them reapplied (spec.md §1/§4.4/§4.5).
func TestDequoteRequote(t *testing.T) {
	result, err := eval1(t, "bump '5")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	if result.QuoteLevel() != 1 {
		t.Fatalf("expected a once-quoted result, got quote level %d (%v)", result.QuoteLevel(), result)
	}
	base, _ := result.Unquoted()
	i, ok := value.AsInteger(base)
	if !ok || i != 6 {
		t.Fatalf("expected the requoted value to unquote to 6, got %v", base)
	}

	plain, err := eval1(t, "bump 5")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	if plain.QuoteLevel() != 0 {
		t.Fatalf("expected an unquoted argument to produce an unquoted result, got quote level %d", plain.QuoteLevel())
	}
}

// TestThrowCatch checks spec.md §4.5's throw/catch unwind: a throw
// propagates as an error until a catch whose label matches intercepts it
// and returns its value.
func TestThrowCatch(t *testing.T) {
	result, err := eval1(t, "catch [throw 5]")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 5 {
		t.Fatalf("expected catch to recover the thrown value 5, got %v", result)
	}

	if _, err := eval1(t, "throw 9"); err == nil {
		t.Fatal("expected an uncaught throw to propagate as an error")
	}
}

// TestEvaluationBarrier checks spec.md §8's mandatory scenario 3: a `|`
// barrier stops argument gathering and chain absorption cold.
func TestEvaluationBarrier(t *testing.T) {
	result, err := eval1(t, "do [1 + 2 | 10]")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 10 {
		t.Fatalf("expected the barrier to stop the chain at 3 and leave 10 as the final result, got %v", result)
	}
}

// TestEvaluativeQuoteViolation checks spec.md §8's law: a left-quoting
// enfix action may steal a bare literal primary, but not the output of a
// prior dispatch in the same chain.
func TestEvaluativeQuoteViolation(t *testing.T) {
	result, err := eval1(t, "5 boxed")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	if result.Kind() != value.KindBlock {
		t.Fatalf("expected boxed to wrap a bare literal in a block, got kind %v", result.Kind())
	}

	_, err = eval1(t, "1 + 1 boxed")
	if err == nil {
		t.Fatal("expected an evaluative-quote-violation error")
	}
	if id := errID(t, err); id != verror.ErrIDEvaluativeQuoteViolation {
		t.Fatalf("expected %s, got %s", verror.ErrIDEvaluativeQuoteViolation, id)
	}
}

// TestAmbiguousInfixErrors checks that a deferred enfix action (ActionDefers)
// still pending at the start of an ordinary argument fetch is an error
// rather than silently dropped (spec.md §4.4 step 1).
func TestAmbiguousInfixErrors(t *testing.T) {
	_, err := eval1(t, "either true then [1] [2]")
	if err == nil {
		t.Fatal("expected an ambiguous-infix error")
	}
	if id := errID(t, err); id != verror.ErrIDAmbiguousInfix {
		t.Fatalf("expected %s, got %s", verror.ErrIDAmbiguousInfix, id)
	}
}

// TestLiteralLeftPathErrors checks that invoking an enfix action through a
// path head is an error: a path has no left-hand value behind it to steal
// (spec.md §8).
func TestLiteralLeftPathErrors(t *testing.T) {
	_, err := eval1(t, "then/x 1 [2]")
	if err == nil {
		t.Fatal("expected a literal-left-path error")
	}
	if id := errID(t, err); id != verror.ErrIDLiteralLeftPath {
		t.Fatalf("expected %s, got %s", verror.ErrIDLiteralLeftPath, id)
	}
}

// TestVariadicParameter checks spec.md §4.4 steps 5-6: a Variadic parameter
// greedily collects every remaining feed expression into one block.
func TestVariadicParameter(t *testing.T) {
	result, err := eval1(t, "variadic-sum 1 2 3")
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 6 {
		t.Fatalf("expected variadic-sum to total 6, got %v", result)
	}
}
