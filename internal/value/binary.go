package value

import "encoding/hex"

// BinaryValue is a raw byte sequence, grounded on the teacher's
// BinaryValue (internal/value/binary.go).
type BinaryValue struct {
	Bytes []byte
}

func NewBinaryValue(b []byte) *BinaryValue { return &BinaryValue{Bytes: b} }

func (b *BinaryValue) String() string {
	if len(b.Bytes) == 0 {
		return "#{}"
	}
	return "#{" + hex.EncodeToString(b.Bytes) + "}"
}

// Binary constructs a binary! cell (inert).
func Binary(b []byte) Cell { return Cell{kind: KindBinary, payload: NewBinaryValue(b)} }

func AsBinary(c Cell) (*BinaryValue, bool) {
	if c.Kind() != KindBinary {
		return nil, false
	}
	bv, ok := c.Payload().(*BinaryValue)
	return bv, ok
}

func (c Cell) binaryEqual(other Cell) bool {
	a, aok := AsBinary(c)
	b, bok := AsBinary(other)
	if !aok || !bok {
		return false
	}
	if len(a.Bytes) != len(b.Bytes) {
		return false
	}
	for i := range a.Bytes {
		if a.Bytes[i] != b.Bytes[i] {
			return false
		}
	}
	return true
}
