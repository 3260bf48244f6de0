package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
)

// DirSource exposes the entries of a single directory as input files.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// List returns the entry names of the directory in lexical order.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: data directory %s", pkgerror.ErrNotFound, s.dir)
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// Read returns the full content of one entry.
func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	return os.ReadFile(filepath.Join(s.dir, name))
}
