package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalArchive persists assets to the local filesystem.
type LocalArchive struct {
	baseDir string
}

// NewLocalArchive creates a LocalArchive instance. The directory is created
// if it does not exist.
func NewLocalArchive(baseDir string) (*LocalArchive, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "datas/archive"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &LocalArchive{baseDir: baseDir}, nil
}

// Store writes the provided bytes to disk and returns the relative path.
func (a *LocalArchive) Store(ctx context.Context, data []byte, opts StoreOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	key := buildObjectKey(opts.Category, opts.BaseName, opts.Extension)

	absPath := filepath.Join(a.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return key, nil
}

var _ Archive = (*LocalArchive)(nil)
