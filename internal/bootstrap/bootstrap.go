// Package bootstrap loads and executes the mezzanine .rc scripts
// (bootstrap/*.rc) against a freshly-registered root context, grounded on
// the teacher's internal/bootstrap/bootstrap.go (same walk-embedded-fs,
// sort-with-init-first, parse-then-run shape; "init.viro" renamed to
// "init.rc" to match this module's own script extension).
package bootstrap

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/renc-lang/rcore/bootstrap"
	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/verror"
)

func wrapBootstrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*verror.Error); ok {
		return verr
	}
	return verror.NewInternalError(verror.ErrIDAssertionFailed, [3]string{context, err.Error(), ""})
}

// Load runs every bootstrap/*.rc script against root, in lexicographic
// order with init.rc forced first if present.
func Load(ev *eval.Evaluator, root *bind.Context) error {
	return LoadFromFS(ev, root, bootstrap.Files())
}

// LoadFromFS is Load parameterized over the embedded filesystem, so tests
// can substitute a smaller in-memory one.
func LoadFromFS(ev *eval.Evaluator, root *bind.Context, scriptFS fs.FS) error {
	var scripts []string
	err := fs.WalkDir(scriptFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rc") {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return wrapBootstrapError(err, "walk bootstrap filesystem")
	}

	sort.Strings(scripts)
	for i, script := range scripts {
		if script == "init.rc" {
			copy(scripts[1:i+1], scripts[:i])
			scripts[0] = script
			break
		}
	}

	for _, script := range scripts {
		content, err := fs.ReadFile(scriptFS, script)
		if err != nil {
			return wrapBootstrapError(err, fmt.Sprintf("read bootstrap script %s", script))
		}

		values, err := parse.Parse(string(content), root)
		if err != nil {
			return wrapBootstrapError(err, fmt.Sprintf("parse bootstrap script %s", script))
		}

		if _, err := ev.EvalToEnd(values, root); err != nil {
			return wrapBootstrapError(err, fmt.Sprintf("execute bootstrap script %s", script))
		}
	}

	return nil
}
