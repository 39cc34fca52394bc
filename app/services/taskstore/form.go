package taskstore

import (
	"context"

	"taskmanager/domain/task"
)

// Draft and edit state belong to the input form. They are held here so every
// surface sees the same form, but they are never persisted.

func (s *Store) Draft() task.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft
}

func (s *Store) SetDraft(d task.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = d
}

// SubmitDraft creates a task from the current draft. On failure the draft is kept.
func (s *Store) SubmitDraft(ctx context.Context) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.create(ctx, s.draft)
}

func (s *Store) BeginEdit(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.editing = index
	return nil
}

func (s *Store) EditingIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.editing, s.editing >= 0
}

func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editing = -1
}

// SaveEdit applies patch to the task being edited and closes the edit.
func (s *Store) SaveEdit(ctx context.Context, patch task.Patch) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing < 0 {
		return task.Task{}, task.ErrNotEditing
	}

	updated, err := s.update(ctx, s.editing, patch)
	if err != nil {
		return task.Task{}, err
	}
	s.editing = -1
	return updated, nil
}
