package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Local opens dataset files from a working tree on disk
type Local struct {
	root string
}

// NewLocal creates a Local file source rooted at dir
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Open opens path relative to the root. Paths escaping the root are rejected.
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return nil, goerr.New("path escapes repository root", goerr.V("path", path), goerr.V("root", l.root))
	}

	fullPath := filepath.Join(l.root, rel)
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("path", fullPath))
	}
	return f, nil
}
