package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlagergren/decimal"
)

// decimalContext is shared by every DecimalValue: decimal128 precision
// (34 digits) with banker's rounding, matching the teacher's NewDecimal
// (internal/value/decimal.go).
var decimalContext = decimal.Context{
	Precision:    34,
	RoundingMode: decimal.ToNearestEven,
}

// DecimalValue wraps an arbitrary-precision decimal, grounded on the
// teacher's use of github.com/ericlagergren/decimal. Scale is kept
// alongside the magnitude for round-trip formatting ("1.20" vs "1.2"),
// exactly as the teacher's DecimalValue does.
type DecimalValue struct {
	Magnitude *decimal.Big
	Scale     int16
}

func NewDecimalValue(mag *decimal.Big, scale int16) *DecimalValue {
	return &DecimalValue{Magnitude: mag, Scale: scale}
}

// Decimal constructs a decimal! cell from a float64, inferring a scale
// from the formatted representation.
func Decimal(f float64) Cell {
	big := new(decimal.Big).SetFloat64(f)
	big.Context = decimalContext
	scale := 0
	if s := strconv.FormatFloat(f, 'f', -1, 64); strings.Contains(s, ".") {
		scale = len(s) - strings.Index(s, ".") - 1
	}
	return Cell{kind: KindDecimal, payload: &DecimalValue{Magnitude: big, Scale: int16(scale)}}
}

// DecimalFromBig constructs a decimal! cell directly from a *decimal.Big.
func DecimalFromBig(big *decimal.Big, scale int16) Cell {
	big.Context = decimalContext
	return Cell{kind: KindDecimal, payload: &DecimalValue{Magnitude: big, Scale: scale}}
}

func AsDecimal(c Cell) (*DecimalValue, bool) {
	if c.Kind() != KindDecimal {
		return nil, false
	}
	d, ok := c.Payload().(*DecimalValue)
	return d, ok
}

func (d *DecimalValue) String() string {
	if d == nil || d.Magnitude == nil {
		return "0.0"
	}
	if f, ok := d.Magnitude.Float64(); ok {
		scale := int(d.Scale)
		if scale < 1 {
			scale = 1
		}
		return fmt.Sprintf("%.*f", scale, f)
	}
	return d.Magnitude.String()
}

func (c Cell) decimalEqual(other Cell) bool {
	a, aok := AsDecimal(c)
	b, bok := AsDecimal(other)
	if !aok || !bok {
		return false
	}
	return a.Magnitude.Cmp(b.Magnitude) == 0
}
