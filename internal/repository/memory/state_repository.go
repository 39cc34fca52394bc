package memory

import (
	"context"
	"sync"

	"taskmanager/domain/task"
)

type StateRepository struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewStateRepository() *StateRepository {
	return &StateRepository{
		entries: make(map[string]string),
	}
}

var _ task.Repository = (*StateRepository)(nil)

func (r *StateRepository) Load(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	value, ok := r.entries[key]
	r.mu.RUnlock()

	return value, ok, nil
}

func (r *StateRepository) Save(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.entries[key] = value
	r.mu.Unlock()

	return nil
}
