package value

import (
	"strconv"
	"strings"
)

// Mold renders c the way the REPL and error "Near" context do: a
// source-round-trippable form. Grounded on the teacher's per-type
// String()/Mold() methods (internal/value/primitives.go and friends),
// generalized into one function dispatching on Kind since Cell is now a
// single struct rather than one Go type per kind.
func Mold(c Cell) string {
	if level := c.QuoteLevel(); level > 0 {
		base, _ := c.Unquoted()
		return strings.Repeat("'", level) + Mold(base)
	}
	switch c.kind {
	case KindEnd:
		return "<end>"
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	case KindBlank:
		return "_"
	case KindLogic:
		b, _ := AsLogic(c)
		if b {
			return "true"
		}
		return "false"
	case KindInteger:
		i, _ := AsInteger(c)
		return strconv.FormatInt(i, 10)
	case KindDecimal:
		d, _ := AsDecimal(c)
		return d.String()
	case KindWord:
		s, _ := AsWord(c)
		return s
	case KindSetWord:
		s, _ := AsWord(c)
		return s + ":"
	case KindGetWord:
		s, _ := AsWord(c)
		return ":" + s
	case KindIssue:
		s, _ := AsWord(c)
		return "#" + s
	case KindString:
		sv, _ := AsString(c)
		return "\"" + sv.String() + "\""
	case KindBinary:
		bv, _ := AsBinary(c)
		return bv.String()
	case KindAction:
		a, _ := AsAction(c)
		return "#[action! " + a.Name + "]"
	case KindFrame:
		return "#[frame!]"
	case KindBlock:
		return moldSeries(c, "[", "]")
	case KindSetBlock:
		return moldSeries(c, "[", "]:")
	case KindGetBlock:
		return ":" + moldSeries(c, "[", "]")
	case KindGroup:
		return moldSeries(c, "(", ")")
	case KindSetGroup:
		return moldSeries(c, "(", "):")
	case KindGetGroup:
		return ":" + moldSeries(c, "(", ")")
	case KindPath, KindSetPath, KindGetPath:
		return moldPath(c)
	default:
		return "?" + KindName(c.kind) + "?"
	}
}

func moldSeries(c Cell, open, close string) string {
	s, ok := AsSeries(c)
	if !ok {
		return open + close
	}
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = Mold(e)
	}
	return open + strings.Join(parts, " ") + close
}

func moldPath(c Cell) string {
	s, ok := AsSeries(c)
	if !ok {
		return "/"
	}
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = Mold(e)
	}
	suffix := ""
	if c.kind == KindSetPath {
		suffix = ":"
	} else if c.kind == KindGetPath {
		return ":" + strings.Join(parts, "/")
	}
	return strings.Join(parts, "/") + suffix
}
