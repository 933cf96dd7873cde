// Package store provides the persistence collaborators of the bot core:
// a keyed blob store for settings and template files, and a message audit
// log keyed by posted-ticket message id.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is the blob persistence contract the dispatch core depends on.
// Keys are flat file names; values are opaque byte blobs.
type Store interface {
	// TrySave persists the value under the key, replacing any previous one.
	TrySave(key string, data []byte) error

	// TryRead returns the value stored under the key.
	// A missing key is reported as an error; callers fall back to defaults.
	TryRead(key string) ([]byte, error)
}

// FileStore is a Store keeping one file per key inside a data directory.
// Admins can replace these files at runtime by uploading them to the bot,
// so the on-disk layout is part of the contract.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory the store is rooted at.
func (s *FileStore) Dir() string {
	return s.dir
}

// TrySave writes the value to <dir>/<key>.
func (s *FileStore) TrySave(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

// TryRead reads the value from <dir>/<key>.
func (s *FileStore) TryRead(key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

// path maps a key to its file, discarding any directory components so a
// key can never escape the data directory.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
