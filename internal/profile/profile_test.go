package profile

import "testing"

func TestReportIncludesStepCount(t *testing.T) {
	p := New()
	p.Start()
	p.Stop()
	p.RecordSteps(42)

	got := p.Report()
	want := "42 steps in " + p.Elapsed().String()
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if p.Steps() != 42 {
		t.Fatalf("expected Steps() to return 42, got %d", p.Steps())
	}
}

func TestStopWithoutStartIsANoop(t *testing.T) {
	p := New()
	p.Stop()
	if p.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed time, got %v", p.Elapsed())
	}
}
