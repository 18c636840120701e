package assetstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileBackend stores one document per file. Keys are slash separated paths
// relative to the filesystem root, without the extension.
type FileBackend struct {
	fs        billy.Filesystem
	extension string
}

// NewFileBackend returns a backend rooted at dir on the local disk.
func NewFileBackend(dir, extension string) *FileBackend {
	return NewFileBackendFS(osfs.New(dir), extension)
}

// NewFileBackendFS returns a backend over any billy filesystem.
func NewFileBackendFS(fs billy.Filesystem, extension string) *FileBackend {
	if extension == "" {
		extension = DefaultExtension
	}
	return &FileBackend{fs: fs, extension: extension}
}

func (b *FileBackend) Name() string { return "file" }

func (b *FileBackend) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := util.Walk(b.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == "." && errors.Is(err, os.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !strings.HasSuffix(p, b.extension) {
			return nil
		}
		key := strings.TrimSuffix(filepath.ToSlash(p), b.extension)
		keys = append(keys, strings.TrimPrefix(key, "./"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk controllers: %w", err)
	}
	return keys, nil
}

func (b *FileBackend) filename(key string) string {
	return path.Clean(key) + b.extension
}

func (b *FileBackend) Read(_ context.Context, key string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, b.filename(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *FileBackend) Write(_ context.Context, key string, data []byte) error {
	name := b.filename(key)
	if dir := path.Dir(name); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(b.fs, name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
