package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunVersionMode(t *testing.T) {
	if code := Run([]string{"--version"}); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}
}

func TestRunEvalMode(t *testing.T) {
	if code := Run([]string{"-c", "1 + 2"}); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}
}

func TestRunEvalModeTypeErrorExitsNonZero(t *testing.T) {
	if code := Run([]string{"-c", `1 + "a"`}); code == ExitSuccess {
		t.Fatal("expected a non-zero exit code for a type error")
	}
}

func TestRunCheckModeValidatesSyntax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.rc")
	if err := os.WriteFile(path, []byte("1 + 2"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if code := Run([]string{"--check", path}); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}
}

func TestRunCheckModeRejectsUnclosedBlock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.rc")
	if err := os.WriteFile(path, []byte("[1 2"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if code := Run([]string{"--check", path}); code != ExitSyntax {
		t.Fatalf("expected ExitSyntax, got %d", code)
	}
}

func TestRunScriptMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.rc")
	if err := os.WriteFile(path, []byte("print 1 + 1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if code := Run([]string{path}); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}
}

func TestRunRejectsMultipleModes(t *testing.T) {
	if code := Run([]string{"--version", "-c", "1"}); code != ExitUsage {
		t.Fatalf("expected ExitUsage, got %d", code)
	}
}
