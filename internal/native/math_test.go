package native

import (
	"testing"

	"github.com/renc-lang/rcore/internal/frame"
	"github.com/renc-lang/rcore/internal/value"
)

func argsFrame(args ...value.Cell) *frame.Frame {
	fr := frame.New("test", nil, len(args), 0, nil)
	for i, a := range args {
		*fr.Arg(i) = a
	}
	return fr
}

func TestAddIntegers(t *testing.T) {
	fr := argsFrame(value.Integer(2), value.Integer(3))
	result, err := Add(fr, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 5 {
		t.Fatalf("expected 5, got %v", result)
	}
}

func TestAddOverflow(t *testing.T) {
	fr := argsFrame(value.Integer(1<<62), value.Integer(1<<62))
	if _, err := Add(fr, nil); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestDivideByZero(t *testing.T) {
	fr := argsFrame(value.Integer(4), value.Integer(0))
	if _, err := Divide(fr, nil); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestDivideTruncatesTowardZero(t *testing.T) {
	fr := argsFrame(value.Integer(-7), value.Integer(2))
	result, err := Divide(fr, nil)
	if err != nil {
		t.Fatalf("Divide returned error: %v", err)
	}
	i, _ := value.AsInteger(result)
	if i != -3 {
		t.Fatalf("expected -3, got %d", i)
	}
}

func TestMultiplyDecimalPromotion(t *testing.T) {
	fr := argsFrame(value.Integer(2), value.Decimal(1.5))
	result, err := Multiply(fr, nil)
	if err != nil {
		t.Fatalf("Multiply returned error: %v", err)
	}
	if result.Kind() != value.KindDecimal {
		t.Fatalf("expected decimal result, got %s", result.Kind())
	}
}

func TestAddTypeMismatch(t *testing.T) {
	fr := argsFrame(value.Word("x"), value.Integer(1))
	if _, err := Add(fr, nil); err == nil {
		t.Fatal("expected type error")
	}
}
