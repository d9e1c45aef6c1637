package native

import (
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

func typeError(name, expectedType string, actual value.Cell) *verror.Error {
	return verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{name, expectedType, value.KindName(actual.Kind())})
}

func mathTypeError(op string, actual value.Cell) *verror.Error {
	return typeError(op, "integer! decimal!", actual)
}

func overflowError(op string) *verror.Error {
	return verror.NewMathError(verror.ErrIDOverflow, [3]string{op, "", ""})
}

func underflowError(op string) *verror.Error {
	return verror.NewMathError(verror.ErrIDUnderflow, [3]string{op, "", ""})
}

func divByZeroError() *verror.Error {
	return verror.NewMathError(verror.ErrIDDivByZero, [3]string{"", "", ""})
}
