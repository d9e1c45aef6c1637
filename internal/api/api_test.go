package api

import (
	"testing"

	"github.com/renc-lang/rcore/internal/value"
)

func TestRunEvaluatesExpression(t *testing.T) {
	root := NewRootContext()
	result, err := Run("1 + 2 * 3", root)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 9 {
		t.Fatalf("expected 9, got %v", result)
	}
}

func TestRunPersistsBindingsAcrossCalls(t *testing.T) {
	root := NewRootContext()
	if _, err := Run("x: 10", root); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result, err := Run("x + 5", root)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 15 {
		t.Fatalf("expected 15, got %v", result)
	}
}

func TestRunReturnsParseError(t *testing.T) {
	root := NewRootContext()
	if _, err := Run("[1 2", root); err == nil {
		t.Fatal("expected a parse error for an unclosed block")
	}
}
