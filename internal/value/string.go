package value

// StringValue is a UTF-8 character sequence stored as runes, matching the
// teacher's StringValue (internal/value/string.go): REBOL strings are
// character series ("first "hello"" yields a character, not a byte), not
// byte series.
type StringValue struct {
	Runes []rune
}

func NewStringValue(s string) *StringValue { return &StringValue{Runes: []rune(s)} }

func (s *StringValue) String() string { return string(s.Runes) }
func (s *StringValue) Len() int        { return len(s.Runes) }

// Str constructs a string! cell (inert).
func Str(s string) Cell { return Cell{kind: KindString, payload: NewStringValue(s)} }

// AsString extracts the StringValue from a string! cell.
func AsString(c Cell) (*StringValue, bool) {
	if c.Kind() != KindString {
		return nil, false
	}
	sv, ok := c.Payload().(*StringValue)
	return sv, ok
}

func (c Cell) stringEqual(other Cell) bool {
	a, aok := AsString(c)
	b, bok := AsString(other)
	if !aok || !bok {
		return false
	}
	return a.String() == b.String()
}
