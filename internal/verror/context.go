package verror

import (
	"strings"

	"github.com/renc-lang/rcore/internal/value"
)

// CaptureNear builds the "Near:" window around index: three cells before,
// the offending cell bracketed, three cells after -- the teacher left this
// as a stub pending the value/eval packages; those now exist.
func CaptureNear(vals []value.Cell, index int) string {
	lo := index - 3
	if lo < 0 {
		lo = 0
	}
	hi := index + 4
	if hi > len(vals) {
		hi = len(vals)
	}
	parts := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		s := value.Mold(vals[i])
		if i == index {
			s = ">>> " + s + " <<<"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// CaptureWhere formats an already-collected call-name stack (most recent
// first) the way Error.Where expects it. The walk itself lives on
// core.Evaluator.Callstack, since that requires the frame chain.
func CaptureWhere(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
