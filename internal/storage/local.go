package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes uploads to disk under a public base directory that
// the HTTP server serves statically.  References look like
// /avatars/<filename> so they resolve directly against the server.
type LocalStore struct {
	baseDir string
}

// NewLocalStore returns a LocalStore rooted at baseDir (e.g. "public").
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes content to <baseDir>/<dir>/<filename>, creating the
// directory when needed, and returns the public path /<dir>/<filename>.
func (s *LocalStore) Save(ctx context.Context, dir, filename string, content []byte) (string, error) {
	target := filepath.Join(s.baseDir, dir, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/" + dir + "/" + filename, nil
}
