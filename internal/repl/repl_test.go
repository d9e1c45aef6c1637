package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestEvalLinePrintsResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)

	r.EvalLineForTest("1 + 2")

	if got := strings.TrimSpace(buf.String()); got != "3" {
		t.Fatalf("expected %q, got %q", "3", got)
	}
}

func TestEvalLineSuppressesVoidResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)

	r.EvalLineForTest("comment [1 + 2]")

	if got := buf.String(); got != "" {
		t.Fatalf("expected no output for void result, got %q", got)
	}
}

func TestEvalLineAwaitsContinuationOnUnclosedBlock(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)

	r.EvalLineForTest("if true [")
	if !r.AwaitingContinuation() {
		t.Fatal("expected REPL to await continuation after unclosed block")
	}

	r.EvalLineForTest("1 ]")
	if r.AwaitingContinuation() {
		t.Fatal("expected continuation to resolve once the block closes")
	}
	if got := strings.TrimSpace(buf.String()); got != "1" {
		t.Fatalf("expected %q, got %q", "1", got)
	}
}

func TestEvalLineReportsErrorAndResets(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)

	r.EvalLineForTest("1 + \"a\"")

	if buf.Len() == 0 {
		t.Fatal("expected an error message to be printed")
	}
	if r.AwaitingContinuation() {
		t.Fatal("expected REPL not to be awaiting continuation after a type error")
	}
}

func TestExitCommandStopsContinuing(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)

	if !r.ShouldContinue() {
		t.Fatal("expected fresh REPL to continue")
	}
	r.EvalLineForTest("exit")
	if r.ShouldContinue() {
		t.Fatal("expected 'exit' to stop the REPL")
	}
}

func TestHistoryRecordsNonEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewREPLForTest(&buf)
	r.noHistory = false

	r.EvalLineForTest("1 + 1")
	r.EvalLineForTest("   ")

	entries := r.HistoryEntries()
	if len(entries) != 1 || entries[0] != "1 + 1" {
		t.Fatalf("expected a single recorded entry, got %v", entries)
	}
}
