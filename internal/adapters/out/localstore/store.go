// Package localstore persists the device-local dataset cache as JSON files.
// The snapshot and the pending-change queue live in two independent files so
// queued changes survive snapshot rewrites. Writes go through a temp file
// and rename so a crash mid-write never leaves a torn document behind.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"mealroute/internal/pkg/errs"
)

const (
	snapshotFile = "dataset.json"
	pendingFile  = "pending.json"
)

// FileStore implements ports.LocalStore on top of a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating the directory
// when it does not exist yet.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewPersistenceError(dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// LoadSnapshot retrieves the cached dataset document, nil when none has
// been saved yet.
func (s *FileStore) LoadSnapshot() (json.RawMessage, error) {
	return s.read(snapshotFile)
}

// SaveSnapshot atomically replaces the cached dataset document.
func (s *FileStore) SaveSnapshot(payload json.RawMessage) error {
	return s.write(snapshotFile, payload)
}

// LoadPending retrieves the pending-change queue document, nil when the
// queue is empty.
func (s *FileStore) LoadPending() (json.RawMessage, error) {
	return s.read(pendingFile)
}

// SavePending atomically replaces the pending-change queue document.
func (s *FileStore) SavePending(payload json.RawMessage) error {
	return s.write(pendingFile, payload)
}

func (s *FileStore) read(name string) (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewPersistenceError(name, err)
	}

	return data, nil
}

func (s *FileStore) write(name string, payload json.RawMessage) error {
	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return errs.NewPersistenceError(name, err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errs.NewPersistenceError(name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errs.NewPersistenceError(name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return errs.NewPersistenceError(name, err)
	}

	return nil
}
