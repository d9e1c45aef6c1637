package signals

import "testing"

func TestTickFiresHookEveryN(t *testing.T) {
	fired := 0
	c := NewCounter(3, func() error { fired++; return nil })

	for i := 0; i < 7; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}
	if fired != 2 {
		t.Fatalf("expected hook to fire 2 times, got %d", fired)
	}
}

func TestTickDisabledWhenEveryIsZero(t *testing.T) {
	c := NewCounter(0, func() error { t.Fatal("hook should never fire"); return nil })
	for i := 0; i < 100; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}
}

func TestTotalCountsEveryTickRegardlessOfHook(t *testing.T) {
	c := NewCounter(0, nil)
	for i := 0; i < 5; i++ {
		_ = c.Tick()
	}
	if c.Total() != 5 {
		t.Fatalf("expected 5, got %d", c.Total())
	}
}

func TestResetRestoresBudget(t *testing.T) {
	fired := 0
	c := NewCounter(2, func() error { fired++; return nil })
	_ = c.Tick()
	c.Reset()
	_ = c.Tick()
	if fired != 0 {
		t.Fatalf("expected hook not to fire after reset, got %d fires", fired)
	}
}
