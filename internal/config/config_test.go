package config

import "testing"

func TestDetectModeDefaultsToREPL(t *testing.T) {
	c := NewConfig()
	mode, err := c.DetectMode()
	if err != nil {
		t.Fatalf("DetectMode returned error: %v", err)
	}
	if mode != ModeREPL {
		t.Fatalf("expected ModeREPL, got %s", mode)
	}
}

func TestDetectModeScript(t *testing.T) {
	c := NewConfig()
	if err := c.LoadFromFlagsWithArgs([]string{"script.rc"}); err != nil {
		t.Fatalf("LoadFromFlagsWithArgs returned error: %v", err)
	}
	mode, err := c.DetectMode()
	if err != nil {
		t.Fatalf("DetectMode returned error: %v", err)
	}
	if mode != ModeScript {
		t.Fatalf("expected ModeScript, got %s", mode)
	}
	if c.ScriptFile != "script.rc" {
		t.Fatalf("expected script.rc, got %q", c.ScriptFile)
	}
}

func TestDetectModeRejectsMultiple(t *testing.T) {
	c := NewConfig()
	if err := c.LoadFromFlagsWithArgs([]string{"--version", "-c", "1 + 1"}); err != nil {
		t.Fatalf("LoadFromFlagsWithArgs returned error: %v", err)
	}
	if _, err := c.DetectMode(); err == nil {
		t.Fatal("expected error for multiple modes")
	}
}

func TestScriptArgsAfterDoubleDash(t *testing.T) {
	c := NewConfig()
	if err := c.LoadFromFlagsWithArgs([]string{"--", "a", "b"}); err != nil {
		t.Fatalf("LoadFromFlagsWithArgs returned error: %v", err)
	}
	if len(c.Args) != 2 || c.Args[0] != "a" || c.Args[1] != "b" {
		t.Fatalf("expected [a b], got %v", c.Args)
	}
}

func TestValidateRequiresScriptForCheck(t *testing.T) {
	c := NewConfig()
	c.CheckOnly = true
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSignalEveryFlagOverridesDefault(t *testing.T) {
	c := NewConfig()
	if err := c.LoadFromFlagsWithArgs([]string{"--signal-every", "500"}); err != nil {
		t.Fatalf("LoadFromFlagsWithArgs returned error: %v", err)
	}
	if c.SignalEvery != 500 {
		t.Fatalf("expected 500, got %d", c.SignalEvery)
	}
}
