// Package taskstore is the task state engine. It owns the ordered task
// collection, the view filter and the form state, and writes the collection
// back to a task.Repository after every mutation.
package taskstore

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"taskmanager/domain/task"
)

type Option func(*Store)

func WithLogger(l log.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func WithKeys(tasksKey, filterKey string) Option {
	return func(s *Store) {
		s.tasksKey = tasksKey
		s.filterKey = filterKey
	}
}

// Store serializes every operation behind one mutex so that a mutation and
// its persistence write are never interleaved with another operation.
type Store struct {
	mu   sync.Mutex
	repo task.Repository
	log  log.FieldLogger

	tasksKey  string
	filterKey string

	tasks  []task.Task
	filter task.Filter
	draft  task.Draft

	// editing is -1 when no task is being edited.
	editing int
	pending map[string]bool
	dirty   bool
}

func New(repo task.Repository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	s := &Store{
		repo:      repo,
		log:       log.StandardLogger(),
		tasksKey:  task.TasksKey,
		filterKey: task.FilterKey,
		tasks:     []task.Task{},
		filter:    task.FilterAll,
		draft:     task.NewDraft(),
		editing:   -1,
		pending:   make(map[string]bool),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Initialize loads the collection and the filter, then resets the filter to
// all and persists that reset. Unreadable state falls back to defaults.
func (s *Store) Initialize(ctx context.Context) ([]task.Task, task.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = make(map[string]bool)
	s.dirty = false

	s.tasks = s.loadTasks(ctx)
	s.filter = s.loadFilter(ctx)
	s.log.WithFields(log.Fields{
		"tasks":  len(s.tasks),
		"filter": s.filter,
	}).Debug("task state loaded")

	s.filter = task.FilterAll
	s.persist(ctx, s.filterKey)

	s.draft = task.NewDraft()
	s.editing = -1

	return s.snapshot(), s.filter
}

func (s *Store) loadTasks(ctx context.Context) []task.Task {
	value, found, err := s.repo.Load(ctx, s.tasksKey)
	if err != nil {
		s.readFailed(s.tasksKey, err)
		return []task.Task{}
	}
	if !found {
		return []task.Task{}
	}

	tasks, err := task.DecodeTasks(value)
	if err != nil {
		s.readFailed(s.tasksKey, err)
		return []task.Task{}
	}
	return tasks
}

func (s *Store) loadFilter(ctx context.Context) task.Filter {
	value, found, err := s.repo.Load(ctx, s.filterKey)
	if err != nil {
		s.readFailed(s.filterKey, err)
		return task.FilterAll
	}
	if !found {
		return task.FilterAll
	}

	f, err := task.DecodeFilter(value)
	if err != nil {
		s.readFailed(s.filterKey, err)
		return task.FilterAll
	}
	return f
}

func (s *Store) CreateTask(ctx context.Context, d task.Draft) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.create(ctx, d)
}

func (s *Store) create(ctx context.Context, d task.Draft) (task.Task, error) {
	if err := d.Validate(); err != nil {
		return task.Task{}, err
	}

	created := d.Task()
	s.tasks = append(s.tasks, created)
	s.draft = task.NewDraft()
	s.persist(ctx, s.tasksKey)

	return created, nil
}

func (s *Store) UpdateTask(ctx context.Context, index int, patch task.Patch) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(ctx, index, patch)
}

func (s *Store) update(ctx context.Context, index int, patch task.Patch) (task.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}

	updated := patch.Apply(s.tasks[index])
	s.tasks[index] = updated
	s.persist(ctx, s.tasksKey)

	return updated, nil
}

func (s *Store) ToggleComplete(ctx context.Context, index int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}

	s.tasks[index].Completed = !s.tasks[index].Completed
	s.persist(ctx, s.tasksKey)

	return s.tasks[index], nil
}

func (s *Store) DeleteTask(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return err
	}

	s.tasks = append(s.tasks[:index:index], s.tasks[index+1:]...)

	// the edit slot follows its task
	switch {
	case s.editing == index:
		s.editing = -1
	case s.editing > index:
		s.editing--
	}

	s.persist(ctx, s.tasksKey)
	return nil
}

func (s *Store) SetFilter(ctx context.Context, f task.Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", task.ErrInvalidFilter, f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = f
	s.persist(ctx, s.filterKey)
	return nil
}

func (s *Store) Filter() task.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter
}

// Tasks returns a copy of the whole collection in insertion order.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

// VisibleTasks returns the tasks matching the current filter, each with its
// index in the unfiltered collection. Mutations must be addressed by that index.
func (s *Store) VisibleTasks() []task.IndexedTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]task.IndexedTask, 0, len(s.tasks))
	for i, t := range s.tasks {
		if s.filter.Match(t) {
			visible = append(visible, task.IndexedTask{Index: i, Task: t})
		}
	}
	return visible
}

// Dirty reports whether the last write to the repository failed.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", task.ErrIndexOutOfRange, index, len(s.tasks))
	}
	return nil
}

func (s *Store) snapshot() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
