package docmodel

import "testing"

func TestBuiltinsUsageFormatsParams(t *testing.T) {
	r := Builtins()
	got := r.Usage("if")
	want := "if condition branch -- run branch when condition is truthy"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuiltinsUsageUnknownName(t *testing.T) {
	r := Builtins()
	got := r.Usage("nope")
	want := "nope: no documentation available"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCategoriesListsAllNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Add(Entry{Name: "do"})
	r.Add(Entry{Name: "comment"})
	got := r.Categories()
	want := "comment, do"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
