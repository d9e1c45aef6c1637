// Package bootstrap embeds the mezzanine .rc scripts loaded at evaluator
// startup, grounded on the teacher's bootstrap/embed_fs.go (same
// go:embed-over-an-fs.FS pattern, extension renamed from .viro to .rc).
package bootstrap

import (
	"embed"
	"io/fs"
)

//go:embed *.rc
var bootstrapFS embed.FS

// Files returns the embedded filesystem of mezzanine scripts.
func Files() fs.FS {
	return bootstrapFS
}
