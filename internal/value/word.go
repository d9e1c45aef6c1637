package value

// Word constructs a word! cell (evaluates to its bound value). Grounded on
// the teacher's WordValue/NewWordVal (internal/value/primitives.go),
// folded into the uniform Cell.
func Word(symbol string) Cell { return Cell{kind: KindWord, payload: symbol} }

// SetWordCell constructs a set-word! cell (word:).
func SetWordCell(symbol string) Cell { return Cell{kind: KindSetWord, payload: symbol} }

// GetWordCell constructs a get-word! cell (:word).
func GetWordCell(symbol string) Cell { return Cell{kind: KindGetWord, payload: symbol} }

// LitWord constructs the literal-word reading 'word. The teacher modeled
// lit-word! as its own kind (LitWordValue); this generalizes it away per
// spec.md's kind list (which has no lit-word! -- Ren-C folds it into
// QUOTED! WORD!) by returning a word cell escaped once.
func LitWord(symbol string) Cell { return Word(symbol).Escape() }

// Issue constructs an issue! cell (e.g. #done), an inert symbolic token.
func Issue(symbol string) Cell { return Cell{kind: KindIssue, payload: symbol} }

// AsWord extracts the symbol from any word-family cell (including an
// issue!, and transparently unwrapping every level of quoting so a lit-word
// reads the same as a plain word for symbol-extraction purposes).
func AsWord(c Cell) (string, bool) {
	if c.Kind() == KindQuoted {
		inner, _ := c.Unquoted()
		if IsWordKind(inner.RawKind()) {
			s, _ := inner.Payload().(string)
			return s, true
		}
		return "", false
	}
	switch c.RawKind() {
	case KindWord, KindSetWord, KindGetWord, KindIssue:
		s, ok := c.Payload().(string)
		return s, ok
	}
	return "", false
}

// IsWord reports whether c, possibly quoted, is a plain word! (used by the
// hard/soft-quote classification and by the lit-word compatibility path).
func IsWord(c Cell) bool {
	return c.RawKind() == KindWord
}
