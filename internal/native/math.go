// Package native implements the interpreter's built-in actions: the small,
// deliberately scoped set of arithmetic, control-flow, and core natives
// the evaluator core needs to be exercised end to end.
//
// Math natives implement arithmetic with integer overflow detection and
// decimal promotion, grounded on the teacher's internal/native/math.go
// (viro-lang-viro) and its github.com/ericlagergren/decimal usage.
package native

import (
	"math"

	"github.com/ericlagergren/decimal"
	"github.com/renc-lang/rcore/internal/value"
)

func isDecimal(c value.Cell) bool { return c.Kind() == value.KindDecimal }

func asBig(c value.Cell) (*decimal.Big, bool) {
	if d, ok := value.AsDecimal(c); ok {
		return d.Magnitude, true
	}
	if i, ok := value.AsInteger(c); ok {
		return new(decimal.Big).SetMantScale(i, 0), true
	}
	return nil, false
}

type decimalOp uint8

const (
	opAdd decimalOp = iota
	opSub
	opMul
	opQuo
)

func decimalArith(name string, a, b value.Cell, op decimalOp) (value.Cell, error) {
	av, ok := asBig(a)
	if !ok {
		return value.Void(), mathTypeError(name, a)
	}
	bv, ok := asBig(b)
	if !ok {
		return value.Void(), mathTypeError(name, b)
	}
	ctx := decimal.Context{Precision: 34, RoundingMode: decimal.ToNearestEven}
	z := new(decimal.Big)
	switch op {
	case opAdd:
		ctx.Add(z, av, bv)
	case opSub:
		ctx.Sub(z, av, bv)
	case opMul:
		ctx.Mul(z, av, bv)
	case opQuo:
		ctx.Quo(z, av, bv)
	}
	return value.DecimalFromBig(z, 2), nil
}

// Add implements `+`: integer + integer with overflow detection, or
// decimal arithmetic with integer-to-decimal promotion on either side.
func Add(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	a, b := *fr.Arg(0), *fr.Arg(1)
	if isDecimal(a) || isDecimal(b) {
		return decimalArith("+", a, b, opAdd)
	}
	ai, ok := value.AsInteger(a)
	if !ok {
		return value.Void(), mathTypeError("+", a)
	}
	bi, ok := value.AsInteger(b)
	if !ok {
		return value.Void(), mathTypeError("+", b)
	}
	if ai > 0 && bi > 0 && ai > math.MaxInt64-bi {
		return value.Void(), overflowError("+")
	}
	if ai < 0 && bi < 0 && ai < math.MinInt64-bi {
		return value.Void(), underflowError("+")
	}
	return value.Integer(ai + bi), nil
}

// Subtract implements `-`.
func Subtract(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	a, b := *fr.Arg(0), *fr.Arg(1)
	if isDecimal(a) || isDecimal(b) {
		return decimalArith("-", a, b, opSub)
	}
	ai, ok := value.AsInteger(a)
	if !ok {
		return value.Void(), mathTypeError("-", a)
	}
	bi, ok := value.AsInteger(b)
	if !ok {
		return value.Void(), mathTypeError("-", b)
	}
	if ai > 0 && bi < 0 && ai > math.MaxInt64+bi {
		return value.Void(), overflowError("-")
	}
	if ai < 0 && bi > 0 && ai < math.MinInt64+bi {
		return value.Void(), underflowError("-")
	}
	return value.Integer(ai - bi), nil
}

// Multiply implements `*`.
func Multiply(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	a, b := *fr.Arg(0), *fr.Arg(1)
	if isDecimal(a) || isDecimal(b) {
		return decimalArith("*", a, b, opMul)
	}
	ai, ok := value.AsInteger(a)
	if !ok {
		return value.Void(), mathTypeError("*", a)
	}
	bi, ok := value.AsInteger(b)
	if !ok {
		return value.Void(), mathTypeError("*", b)
	}
	if ai != 0 && bi != 0 {
		result := ai * bi
		if result/bi != ai {
			return value.Void(), overflowError("*")
		}
		return value.Integer(result), nil
	}
	return value.Integer(0), nil
}

// Divide implements `/`: integer division truncates toward zero (matching
// Go's `/`); decimal division uses the shared decimal128 context.
func Divide(fr value.Frame, ev value.Evaluator) (value.Cell, error) {
	a, b := *fr.Arg(0), *fr.Arg(1)
	if isDecimal(a) || isDecimal(b) {
		bv, ok := asBig(b)
		if ok && bv.Sign() == 0 {
			return value.Void(), divByZeroError()
		}
		return decimalArith("/", a, b, opQuo)
	}
	ai, ok := value.AsInteger(a)
	if !ok {
		return value.Void(), mathTypeError("/", a)
	}
	bi, ok := value.AsInteger(b)
	if !ok {
		return value.Void(), mathTypeError("/", b)
	}
	if bi == 0 {
		return value.Void(), divByZeroError()
	}
	if ai == math.MinInt64 && bi == -1 {
		return value.Void(), overflowError("/")
	}
	return value.Integer(ai / bi), nil
}
