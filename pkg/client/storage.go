package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// storageNamespace is the fixed key the session record is stored under.
const storageNamespace = "auth-store"

// storageVersion tags the persisted record for forward migration. A record
// with a different version is discarded on load.
const storageVersion = 1

// SessionState is the durable subset of the session: only these three fields
// survive a restart. Transient fields (loading, error) are never persisted.
type SessionState struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Storage persists the durable session state across process restarts.
type Storage interface {
	// Load returns the stored state, or nil when nothing usable is stored.
	Load() (*SessionState, error)
	Save(state SessionState) error
	Clear() error
}

type persistedRecord struct {
	State   SessionState `json:"state"`
	Version int          `json:"version"`
}

// FileStorage keeps the session record as a single JSON file named after the
// storage namespace inside dir.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage rooted at dir, creating it as needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}
	return &FileStorage{path: filepath.Join(dir, storageNamespace+".json")}, nil
}

func (s *FileStorage) Load() (*SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session storage: %w", err)
	}

	var record persistedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// A corrupt record is treated as absent rather than fatal.
		return nil, nil
	}
	if record.Version != storageVersion {
		return nil, nil
	}
	return &record.State, nil
}

func (s *FileStorage) Save(state SessionState) error {
	record := persistedRecord{State: state, Version: storageVersion}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("session storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session storage: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session storage: %w", err)
	}
	return nil
}
