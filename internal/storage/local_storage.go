package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes archives below a directory on disk.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates the directory if it does not exist.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "datas/exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Put writes the object and returns its slash-separated path relative to the base dir.
func (s *LocalStorage) Put(ctx context.Context, obj Object) (string, error) {
	key, _, err := prepare(ctx, "", obj)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	// O_EXCL keeps two exports in the same instant from overwriting each other.
	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	if _, err := f.Write(obj.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return key, nil
}

var _ Storage = (*LocalStorage)(nil)
