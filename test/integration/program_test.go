// Package integration runs whole programs through the full stack --
// bootstrap mezzanine scripts, the parser, and the evaluator -- checking
// end-to-end results rather than any one package in isolation, grounded
// on the teacher's own test/ layout and its table-driven-subtests texture
// (SPEC_FULL.md §1.4: stdlib testing only, no assertion library).
package integration

import (
	"testing"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/bootstrap"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/value"
)

func newProgram(t *testing.T) (*eval.Evaluator, *bind.Context) {
	t.Helper()
	root := bind.NewContext(nil)
	native.Register(root)
	ev := eval.New(signals.NewCounter(1000, nil))
	if err := bootstrap.Load(ev, root); err != nil {
		t.Fatalf("bootstrap.Load returned error: %v", err)
	}
	return ev, root
}

func run(t *testing.T, source string) value.Cell {
	t.Helper()
	ev, root := newProgram(t)
	values, err := parse.Parse(source, root)
	if err != nil {
		t.Fatalf("parse.Parse(%q) returned error: %v", source, err)
	}
	result, err := ev.EvalToEnd(values, root)
	if err != nil {
		t.Fatalf("EvalToEnd(%q) returned error: %v", source, err)
	}
	return result
}

func TestArithmeticChainEvaluatesLeftToRight(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int64
	}{
		{"add-then-multiply", "1 + 2 * 3", 9},
		{"multiply-then-add", "2 * 3 + 1", 7},
		{"mixed-subtract-divide", "10 - 4 / 2", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := run(t, tc.source)
			got, ok := value.AsInteger(result)
			if !ok || got != tc.want {
				t.Fatalf("got %v, want %d", result, tc.want)
			}
		})
	}
}

func TestConditionalCombinators(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int64
	}{
		{"if-true-runs-branch", "if true [1 + 1]", 2},
		{"either-false-branch", "either false [1] [2]", 2},
		{"then-runs-on-non-null", "1 + 1 then [10]", 10},
		{"else-runs-on-null", "null else [99]", 99},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := run(t, tc.source)
			got, ok := value.AsInteger(result)
			if !ok || got != tc.want {
				t.Fatalf("got %v, want %d", result, tc.want)
			}
		})
	}
}

func TestBootstrapMezzanineWords(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   bool
	}{
		{"not-false-is-true", "not false", true},
		{"not-true-is-false", "not true", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := run(t, tc.source)
			got, ok := value.AsLogic(result)
			if !ok || got != tc.want {
				t.Fatalf("got %v, want %v", result, tc.want)
			}
		})
	}
}

func TestUserFuncDefinitionAndCall(t *testing.T) {
	result := run(t, "square: func [n] [n * n]  square 6")
	got, ok := value.AsInteger(result)
	if !ok || got != 36 {
		t.Fatalf("got %v, want 36", result)
	}
}

func TestDefaultUsesFallbackOnlyWhenNull(t *testing.T) {
	result := run(t, "default null [7]")
	got, ok := value.AsInteger(result)
	if !ok || got != 7 {
		t.Fatalf("got %v, want 7", result)
	}
}

func TestUnlessSkipsOnTruthyCondition(t *testing.T) {
	result := run(t, "unless true [1 + 1]")
	if !value.IsNull(result) {
		t.Fatalf("expected null, got %v", result)
	}
}
