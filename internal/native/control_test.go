package native

import (
	"testing"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/frame"
	"github.com/renc-lang/rcore/internal/value"
)

func TestIfTruthyRunsBranch(t *testing.T) {
	ctx := bind.NewContext(nil)
	ev := eval.New(nil)
	branch := value.Block([]value.Cell{value.Integer(42)}).WithSpecifier(ctx)

	fr := frame.New("if", nil, 2, 0, nil)
	*fr.Arg(0) = value.Logic(true)
	*fr.Arg(1) = branch

	result, err := If(fr, ev)
	if err != nil {
		t.Fatalf("If returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 42 {
		t.Fatalf("expected 42, got %v", result)
	}
}

func TestIfFalsyReturnsNull(t *testing.T) {
	ctx := bind.NewContext(nil)
	ev := eval.New(nil)
	branch := value.Block([]value.Cell{value.Integer(42)}).WithSpecifier(ctx)

	fr := frame.New("if", nil, 2, 0, nil)
	*fr.Arg(0) = value.Logic(false)
	*fr.Arg(1) = branch

	result, err := If(fr, ev)
	if err != nil {
		t.Fatalf("If returned error: %v", err)
	}
	if !value.IsNull(result) {
		t.Fatalf("expected null, got %v", result)
	}
}

func TestEitherPicksBranch(t *testing.T) {
	ctx := bind.NewContext(nil)
	ev := eval.New(nil)
	trueBranch := value.Block([]value.Cell{value.Integer(1)}).WithSpecifier(ctx)
	falseBranch := value.Block([]value.Cell{value.Integer(2)}).WithSpecifier(ctx)

	fr := frame.New("either", nil, 3, 0, nil)
	*fr.Arg(0) = value.Logic(false)
	*fr.Arg(1) = trueBranch
	*fr.Arg(2) = falseBranch

	result, err := Either(fr, ev)
	if err != nil {
		t.Fatalf("Either returned error: %v", err)
	}
	i, _ := value.AsInteger(result)
	if i != 2 {
		t.Fatalf("expected 2, got %v", result)
	}
}

func TestFirstOfBlock(t *testing.T) {
	fr := frame.New("first", nil, 1, 0, nil)
	*fr.Arg(0) = value.Block([]value.Cell{value.Integer(9), value.Integer(10)})
	result, err := First(fr, nil)
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	i, _ := value.AsInteger(result)
	if i != 9 {
		t.Fatalf("expected 9, got %v", result)
	}
}

func TestFirstOfEmptyBlockErrors(t *testing.T) {
	fr := frame.New("first", nil, 1, 0, nil)
	*fr.Arg(0) = value.Block(nil)
	if _, err := First(fr, nil); err == nil {
		t.Fatal("expected empty-series error")
	}
}

func TestFunctBuildsCallableAction(t *testing.T) {
	ctx := bind.NewContext(nil)
	Register(ctx)
	ev := eval.New(nil)

	spec := value.Block([]value.Cell{value.Word("x")}).WithSpecifier(ctx)
	body := value.Block([]value.Cell{value.Word("x"), value.Word("+"), value.Integer(1)}).WithSpecifier(ctx)

	fr := frame.New("func", nil, 2, 0, nil)
	*fr.Arg(0) = spec
	*fr.Arg(1) = body

	fnCell, err := Funct(fr, ev)
	if err != nil {
		t.Fatalf("Funct returned error: %v", err)
	}
	action, ok := value.AsAction(fnCell)
	if !ok {
		t.Fatalf("expected an action! cell, got %v", fnCell)
	}

	callFr := frame.New("user-func", action, 1, 0, nil)
	*callFr.Arg(0) = value.Integer(4)
	result, err := action.Dispatch(callFr, ev)
	if err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 5 {
		t.Fatalf("expected 5, got %v", result)
	}
}

func TestThenSkipsOnNull(t *testing.T) {
	ctx := bind.NewContext(nil)
	ev := eval.New(nil)
	branch := value.Block([]value.Cell{value.Integer(5)}).WithSpecifier(ctx)

	fr := frame.New("then", nil, 2, 0, nil)
	*fr.Arg(0) = value.Null()
	*fr.Arg(1) = branch

	result, err := Then(fr, ev)
	if err != nil {
		t.Fatalf("Then returned error: %v", err)
	}
	if !value.IsNull(result) {
		t.Fatalf("expected null passthrough, got %v", result)
	}
}
