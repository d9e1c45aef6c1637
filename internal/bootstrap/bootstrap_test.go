package bootstrap

import (
	"testing"
	"testing/fstest"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/value"
)

func newRootForTest() (*eval.Evaluator, *bind.Context) {
	root := bind.NewContext(nil)
	native.Register(root)
	return eval.New(signals.NewCounter(10000, nil)), root
}

func TestLoadFromFSDefinesNot(t *testing.T) {
	ev, root := newRootForTest()
	fsys := fstest.MapFS{
		"init.rc": {Data: []byte(`not: func [value] [either value [false] [true]]`)},
	}

	if err := LoadFromFS(ev, root, fsys); err != nil {
		t.Fatalf("LoadFromFS returned error: %v", err)
	}

	values, err := parse.Parse("not false", root)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	result, err := ev.EvalToEnd(values, root)
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	b, ok := value.AsLogic(result)
	if !ok || !b {
		t.Fatalf("expected true, got %v", result)
	}
}

func TestLoadFromFSRunsInitFirst(t *testing.T) {
	ev, root := newRootForTest()
	fsys := fstest.MapFS{
		"aaa.rc":  {Data: []byte("double: func [x] [x * 2]\nbase: 20 + one")},
		"init.rc": {Data: []byte(`one: 1`)},
	}

	if err := LoadFromFS(ev, root, fsys); err != nil {
		t.Fatalf("LoadFromFS returned error: %v", err)
	}

	values, err := parse.Parse("double base", root)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	result, err := ev.EvalToEnd(values, root)
	if err != nil {
		t.Fatalf("eval returned error: %v", err)
	}
	i, ok := value.AsInteger(result)
	if !ok || i != 42 {
		t.Fatalf("expected 42, got %v", result)
	}
}
