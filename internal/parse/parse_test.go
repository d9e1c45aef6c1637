package parse

import (
	"testing"

	"github.com/renc-lang/rcore/internal/value"
)

func TestParseIntegerAndWord(t *testing.T) {
	cells, err := Parse("foo 42", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Kind() != value.KindWord {
		t.Fatalf("expected word, got %s", cells[0].Kind())
	}
	i, ok := value.AsInteger(cells[1])
	if !ok || i != 42 {
		t.Fatalf("expected integer 42, got %v", cells[1])
	}
}

func TestParseSetWordAndBlock(t *testing.T) {
	cells, err := Parse("x: [1 2 3]", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Kind() != value.KindSetWord {
		t.Fatalf("expected set-word, got %s", cells[0].Kind())
	}
	if cells[1].Kind() != value.KindBlock {
		t.Fatalf("expected block, got %s", cells[1].Kind())
	}
	s, _ := value.AsSeries(cells[1])
	if s.Len() != 3 {
		t.Fatalf("expected 3 block elements, got %d", s.Len())
	}
}

func TestParsePathAndRefinement(t *testing.T) {
	cells, err := Parse("foo/bar 1", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cells[0].Kind() != value.KindPath {
		t.Fatalf("expected path, got %s", cells[0].Kind())
	}
	s, _ := value.AsSeries(cells[0])
	if s.Len() != 2 {
		t.Fatalf("expected 2 path segments, got %d", s.Len())
	}
}

func TestParseDecimalAndString(t *testing.T) {
	cells, err := Parse(`1.5 "hi"`, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cells[0].Kind() != value.KindDecimal {
		t.Fatalf("expected decimal, got %s", cells[0].Kind())
	}
	if cells[1].Kind() != value.KindString {
		t.Fatalf("expected string, got %s", cells[1].Kind())
	}
}

func TestParseGetWordAndLitWord(t *testing.T) {
	cells, err := Parse(":foo 'bar", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cells[0].Kind() != value.KindGetWord {
		t.Fatalf("expected get-word, got %s", cells[0].Kind())
	}
	if cells[1].Kind() != value.KindQuoted {
		t.Fatalf("expected quoted word, got %s", cells[1].Kind())
	}
}

func TestParseUnclosedBlockErrors(t *testing.T) {
	if _, err := Parse("[1 2", nil); err == nil {
		t.Fatal("expected unclosed block error")
	}
}
