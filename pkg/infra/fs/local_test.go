package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rankguard/pkg/infra/fs"
)

func TestLocal_Open(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gt.NoError(t, os.MkdirAll(filepath.Join(dir, "old"), 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "old", "rip.csv"), []byte("name,affiliation\n"), 0644))

	src := fs.NewLocal(dir)

	t.Run("nested file", func(t *testing.T) {
		f, err := src.Open(ctx, "old/rip.csv")
		gt.NoError(t, err)
		defer f.Close()

		data, err := io.ReadAll(f)
		gt.NoError(t, err)
		gt.Equal(t, string(data), "name,affiliation\n")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.Open(ctx, "csrankings-q.csv")
		gt.Error(t, err)
	})

	t.Run("path traversal", func(t *testing.T) {
		_, err := src.Open(ctx, "../outside.csv")
		gt.Error(t, err)
	})

	t.Run("absolute path", func(t *testing.T) {
		_, err := src.Open(ctx, "/etc/passwd")
		gt.Error(t, err)
	})
}
