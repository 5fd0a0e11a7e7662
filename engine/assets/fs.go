package assets

import (
	"embed"
	"errors"
	"io/fs"
	"os"
)

//go:embed shaders
var builtin embed.FS

// FS resolves asset paths (slash-separated, relative to the asset root)
// against a root file system, falling back to the shaders compiled into the
// binary.
type FS struct {
	root fs.FS
}

// New wraps root. A nil root serves only the built-in shaders.
func New(root fs.FS) *FS { return &FS{root: root} }

// Dir serves assets from a directory on disk.
func Dir(path string) *FS { return New(os.DirFS(path)) }

// ReadFile reads name from the root, then from the built-in set.
func (a *FS) ReadFile(name string) ([]byte, error) {
	if a.root != nil {
		b, err := fs.ReadFile(a.root, name)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return b, err
		}
	}
	return fs.ReadFile(builtin, name)
}

// Open opens name from the root, then from the built-in set.
func (a *FS) Open(name string) (fs.File, error) {
	if a.root != nil {
		f, err := a.root.Open(name)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return f, err
		}
	}
	return builtin.Open(name)
}
