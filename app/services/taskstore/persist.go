package taskstore

import (
	"context"
	"fmt"

	"taskmanager/domain/task"
)

// persist marks keys as pending and writes every pending key. A key stays
// pending until a write for it succeeds, so the next successful write after
// an outage brings storage back in line with memory.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, k := range keys {
		s.pending[k] = true
	}

	for _, key := range []string{s.tasksKey, s.filterKey} {
		if !s.pending[key] {
			continue
		}

		value, err := s.encode(key)
		if err == nil {
			err = s.repo.Save(ctx, key, value)
		}
		if err != nil {
			s.writeFailed(key, err)
			continue
		}
		delete(s.pending, key)
	}

	if s.dirty && len(s.pending) == 0 {
		s.log.Info("task state resynchronized")
	}
	s.dirty = len(s.pending) > 0
}

func (s *Store) encode(key string) (string, error) {
	if key == s.filterKey {
		return task.EncodeFilter(s.filter), nil
	}
	return task.EncodeTasks(s.tasks)
}

func (s *Store) writeFailed(key string, err error) {
	s.log.WithField("key", key).
		WithError(fmt.Errorf("%w: %w", ErrPersistenceWrite, err)).
		Error("keeping in-memory task state")
}

func (s *Store) readFailed(key string, err error) {
	s.log.WithField("key", key).
		WithError(fmt.Errorf("%w: %w", ErrPersistenceRead, err)).
		Warn("falling back to default task state")
}

// Resync retries the writes that failed since the last successful one. It is
// a no-op when nothing is pending.
func (s *Store) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	s.persist(ctx)
	if s.dirty {
		return fmt.Errorf("%w: %d keys still pending", ErrPersistenceWrite, len(s.pending))
	}
	return nil
}
