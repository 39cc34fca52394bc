// Package file stores engine state as one JSON object on disk, the way a
// browser keeps localStorage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"taskmanager/domain/task"
)

const StateFileName = "state.json"

type StateRepository struct {
	mu  sync.RWMutex
	dir string
}

func NewStateRepository(dir string) *StateRepository {
	return &StateRepository{dir: dir}
}

var _ task.Repository = (*StateRepository)(nil)

func (r *StateRepository) Path() string {
	return filepath.Join(r.dir, StateFileName)
}

func (r *StateRepository) Load(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.read()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (r *StateRepository) Save(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		// a corrupt file is replaced rather than blocking every write
		entries = map[string]string{}
	}
	entries[key] = value

	return r.write(entries)
}

func (r *StateRepository) read() (map[string]string, error) {
	data, err := os.ReadFile(r.Path())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.Path(), err)
	}
	return entries, nil
}

func (r *StateRepository) write(entries map[string]string) error {
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file first, then rename for atomic operation
	tmpFile := r.Path() + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpFile, r.Path())
}
