package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is used when New is given an empty path.
var DefaultPath = filepath.Join(".survey", "submissions.json")

// Store implements ports.BlobStore using a single file on the local filesystem.
type Store struct {
	Path string
}

// New creates a new Store writing to path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Get reads the file. A missing file is an empty store.
func (s *Store) Get(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read submissions file: %w", err)
	}
	return data, nil
}

// Put replaces the file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure submissions directory: %w", err)
	}

	// 1. Create Temp File
	// Same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists, so remove it first.
	// The delete+rename window is acceptable compared to a partially written file.
	if _, err := os.Stat(s.Path); err == nil {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove existing submissions file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
