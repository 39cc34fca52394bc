package taskstore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/domain/task"
)

type fakeRepository struct {
	entries map[string]string
	saves   map[string]int
	loadFn  func(key string) (string, bool, error)
	saveFn  func(key, value string) error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		entries: make(map[string]string),
		saves:   make(map[string]int),
	}
}

func (r *fakeRepository) Load(_ context.Context, key string) (string, bool, error) {
	if r.loadFn != nil {
		return r.loadFn(key)
	}
	v, ok := r.entries[key]
	return v, ok, nil
}

func (r *fakeRepository) Save(_ context.Context, key, value string) error {
	if r.saveFn != nil {
		if err := r.saveFn(key, value); err != nil {
			return err
		}
	}
	r.entries[key] = value
	r.saves[key]++
	return nil
}

func newTestStore(t *testing.T, repo task.Repository) *Store {
	t.Helper()

	logger := log.New()
	logger.SetOutput(&bytes.Buffer{})

	s, err := New(repo, WithLogger(logger))
	require.NoError(t, err)
	s.Initialize(context.Background())
	return s
}

func seed(t *testing.T, s *Store, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := s.CreateTask(context.Background(), task.Draft{Title: title})
		require.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrRepositoryNil)
}

func TestStore_Initialize(t *testing.T) {
	t.Run("should start empty when nothing is stored", func(t *testing.T) {
		repo := newFakeRepository()
		s, err := New(repo)
		require.NoError(t, err)

		tasks, filter := s.Initialize(context.Background())
		assert.Empty(t, tasks)
		assert.Equal(t, task.FilterAll, filter)
		assert.Equal(t, "all", repo.entries[task.FilterKey])
	})

	t.Run("should fall back to empty on a corrupt payload", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries[task.TasksKey] = `{not json`

		s := newTestStore(t, repo)
		assert.Empty(t, s.Tasks())
		assert.False(t, s.Dirty())
	})

	t.Run("should fall back to empty when the repository cannot be read", func(t *testing.T) {
		repo := newFakeRepository()
		repo.loadFn = func(string) (string, bool, error) {
			return "", false, errors.New("disk gone")
		}

		s := newTestStore(t, repo)
		assert.Empty(t, s.Tasks())
		assert.Equal(t, task.FilterAll, s.Filter())
	})

	t.Run("should reset a persisted filter to all and persist the reset", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries[task.FilterKey] = "completed"

		s := newTestStore(t, repo)
		assert.Equal(t, task.FilterAll, s.Filter())
		assert.Equal(t, "all", repo.entries[task.FilterKey])
	})

	t.Run("should ignore an unknown persisted filter", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries[task.FilterKey] = "archived"

		s := newTestStore(t, repo)
		assert.Equal(t, task.FilterAll, s.Filter())
	})

	t.Run("should round trip the collection", func(t *testing.T) {
		repo := newFakeRepository()
		s := newTestStore(t, repo)
		ctx := context.Background()

		_, err := s.CreateTask(ctx, task.Draft{Title: "a", Description: "d", Priority: task.PriorityHigh, DueDate: "2024-06-01"})
		require.NoError(t, err)
		seed(t, s, "b", "c")
		_, err = s.ToggleComplete(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, s.SetFilter(ctx, task.FilterCompleted))
		want := s.Tasks()

		reloaded := newTestStore(t, repo)
		assert.Equal(t, want, reloaded.Tasks())
		assert.Equal(t, task.FilterAll, reloaded.Filter())
	})

	t.Run("should use custom keys", func(t *testing.T) {
		repo := newFakeRepository()
		s, err := New(repo, WithKeys("t", "f"))
		require.NoError(t, err)
		s.Initialize(context.Background())
		seed(t, s, "a")

		assert.Contains(t, repo.entries, "t")
		assert.Equal(t, "all", repo.entries["f"])
		assert.NotContains(t, repo.entries, task.TasksKey)
	})
}

func TestStore_CreateTask(t *testing.T) {
	t.Run("should reject a whitespace title without mutation", func(t *testing.T) {
		repo := newFakeRepository()
		s := newTestStore(t, repo)
		seed(t, s, "a")
		saves := repo.saves[task.TasksKey]

		_, err := s.CreateTask(context.Background(), task.Draft{Title: "   "})
		assert.ErrorIs(t, err, task.ErrEmptyTitle)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, saves, repo.saves[task.TasksKey])
	})

	t.Run("should append an incomplete task at the end", func(t *testing.T) {
		repo := newFakeRepository()
		s := newTestStore(t, repo)
		seed(t, s, "first")

		d := task.Draft{Title: "second", Description: "desc", Priority: task.PriorityMedium, DueDate: "2024-12-24"}
		created, err := s.CreateTask(context.Background(), d)
		require.NoError(t, err)

		visible := s.VisibleTasks()
		require.Len(t, visible, 2)
		last := visible[1]
		assert.Equal(t, 1, last.Index)
		assert.Equal(t, created, last.Task)
		assert.Equal(t, task.Task{Title: "second", Description: "desc", Priority: task.PriorityMedium, DueDate: "2024-12-24"}, last.Task)
	})

	t.Run("should persist the full collection", func(t *testing.T) {
		repo := newFakeRepository()
		s := newTestStore(t, repo)
		seed(t, s, "a", "b")

		stored, err := task.DecodeTasks(repo.entries[task.TasksKey])
		require.NoError(t, err)
		assert.Equal(t, s.Tasks(), stored)
	})

	t.Run("should reset the draft", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		s.SetDraft(task.Draft{Title: "x", Priority: task.PriorityHigh})

		_, err := s.CreateTask(context.Background(), task.Draft{Title: "y"})
		require.NoError(t, err)
		assert.Equal(t, task.NewDraft(), s.Draft())
	})
}

func TestStore_UpdateTask(t *testing.T) {
	t.Run("should change only the patched field", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		ctx := context.Background()
		_, err := s.CreateTask(ctx, task.Draft{Title: "a", Description: "d", Priority: task.PriorityHigh, DueDate: "2024-01-01"})
		require.NoError(t, err)
		_, err = s.ToggleComplete(ctx, 0)
		require.NoError(t, err)

		title := "X"
		updated, err := s.UpdateTask(ctx, 0, task.Patch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, task.Task{Title: "X", Description: "d", Priority: task.PriorityHigh, DueDate: "2024-01-01", Completed: true}, updated)
		assert.Equal(t, updated, s.Tasks()[0])
	})

	t.Run("should not re-validate the title", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		seed(t, s, "a")

		empty := ""
		updated, err := s.UpdateTask(context.Background(), 0, task.Patch{Title: &empty})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Title)
	})
}

func TestStore_ToggleComplete(t *testing.T) {
	s := newTestStore(t, newFakeRepository())
	ctx := context.Background()
	seed(t, s, "a", "b")

	toggled, err := s.ToggleComplete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.False(t, s.Tasks()[0].Completed)

	toggled, err = s.ToggleComplete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestStore_DeleteTask(t *testing.T) {
	t.Run("should shift later tasks down unchanged", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		seed(t, s, "a", "b", "c", "d")
		before := s.Tasks()

		require.NoError(t, s.DeleteTask(context.Background(), 1))

		after := s.Tasks()
		require.Len(t, after, 3)
		assert.Equal(t, before[0], after[0])
		assert.Equal(t, before[2:], after[1:])
	})

	t.Run("should not alias earlier snapshots", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		seed(t, s, "a", "b", "c")
		before := s.Tasks()

		require.NoError(t, s.DeleteTask(context.Background(), 0))
		assert.Equal(t, "a", before[0].Title)
	})
}

func TestStore_IndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	title := "X"

	ops := map[string]func(s *Store, i int) error{
		"update": func(s *Store, i int) error {
			_, err := s.UpdateTask(ctx, i, task.Patch{Title: &title})
			return err
		},
		"toggle": func(s *Store, i int) error {
			_, err := s.ToggleComplete(ctx, i)
			return err
		},
		"delete": func(s *Store, i int) error {
			return s.DeleteTask(ctx, i)
		},
		"edit": func(s *Store, i int) error {
			return s.BeginEdit(i)
		},
	}

	for name, op := range ops {
		for _, index := range []int{-1, 2, 3, 100} {
			t.Run(name, func(t *testing.T) {
				repo := newFakeRepository()
				s := newTestStore(t, repo)
				seed(t, s, "a", "b")
				before := s.Tasks()
				saves := repo.saves[task.TasksKey]

				err := op(s, index)
				assert.ErrorIs(t, err, task.ErrIndexOutOfRange)
				assert.Equal(t, before, s.Tasks())
				assert.Equal(t, saves, repo.saves[task.TasksKey])
			})
		}
	}
}

func TestStore_SetFilter(t *testing.T) {
	t.Run("should persist the filter only", func(t *testing.T) {
		repo := newFakeRepository()
		s := newTestStore(t, repo)
		seed(t, s, "a")
		taskSaves := repo.saves[task.TasksKey]

		require.NoError(t, s.SetFilter(context.Background(), task.FilterIncomplete))
		assert.Equal(t, "incomplete", repo.entries[task.FilterKey])
		assert.Equal(t, taskSaves, repo.saves[task.TasksKey])
	})

	t.Run("should reject a value outside the closed set", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())

		err := s.SetFilter(context.Background(), task.Filter("archived"))
		assert.ErrorIs(t, err, task.ErrInvalidFilter)
		assert.Equal(t, task.FilterAll, s.Filter())
	})
}

func TestStore_VisibleTasks(t *testing.T) {
	s := newTestStore(t, newFakeRepository())
	ctx := context.Background()
	seed(t, s, "a", "b", "c", "d")
	_, err := s.ToggleComplete(ctx, 1)
	require.NoError(t, err)
	_, err = s.ToggleComplete(ctx, 3)
	require.NoError(t, err)

	indices := func(v []task.IndexedTask) []int {
		out := []int{}
		for _, it := range v {
			out = append(out, it.Index)
		}
		return out
	}

	assert.Equal(t, []int{0, 1, 2, 3}, indices(s.VisibleTasks()))

	require.NoError(t, s.SetFilter(ctx, task.FilterCompleted))
	visible := s.VisibleTasks()
	assert.Equal(t, []int{1, 3}, indices(visible))
	for _, it := range visible {
		assert.True(t, it.Task.Completed)
	}

	require.NoError(t, s.SetFilter(ctx, task.FilterIncomplete))
	visible = s.VisibleTasks()
	assert.Equal(t, []int{0, 2}, indices(visible))
	assert.Equal(t, "c", visible[1].Task.Title)

	t.Run("should address the unfiltered collection by the returned index", func(t *testing.T) {
		_, err := s.ToggleComplete(ctx, visible[1].Index)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, indices(s.VisibleTasks()))
	})
}

func TestStore_Scenarios(t *testing.T) {
	t.Run("should list a newly created task", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())

		_, err := s.CreateTask(context.Background(), task.Draft{Title: "Buy milk", Priority: task.PriorityLow})
		require.NoError(t, err)

		assert.Equal(t, []task.IndexedTask{
			{Index: 0, Task: task.Task{Title: "Buy milk", Priority: task.PriorityLow}},
		}, s.VisibleTasks())
	})

	t.Run("should hide a completed task under the incomplete filter", func(t *testing.T) {
		s := newTestStore(t, newFakeRepository())
		ctx := context.Background()
		seed(t, s, "Buy milk")

		_, err := s.ToggleComplete(ctx, 0)
		require.NoError(t, err)
		require.NoError(t, s.SetFilter(ctx, task.FilterIncomplete))

		assert.Empty(t, s.VisibleTasks())
	})
}

func TestStore_PersistenceWriteFailure(t *testing.T) {
	repo := newFakeRepository()
	s := newTestStore(t, repo)
	ctx := context.Background()

	failing := true
	repo.saveFn = func(string, string) error {
		if failing {
			return errors.New("store unavailable")
		}
		return nil
	}

	created, err := s.CreateTask(ctx, task.Draft{Title: "offline"})
	require.NoError(t, err)
	assert.Equal(t, "offline", created.Title)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Dirty())
	assert.NotContains(t, repo.entries, task.TasksKey)

	failing = false
	require.NoError(t, s.SetFilter(ctx, task.FilterCompleted))
	assert.False(t, s.Dirty())

	stored, err := task.DecodeTasks(repo.entries[task.TasksKey])
	require.NoError(t, err)
	assert.Equal(t, s.Tasks(), stored)
}

func TestStore_Resync(t *testing.T) {
	repo := newFakeRepository()
	s := newTestStore(t, repo)
	ctx := context.Background()

	require.NoError(t, s.Resync(ctx), "nothing pending")

	failing := true
	repo.saveFn = func(string, string) error {
		if failing {
			return errors.New("disk full")
		}
		return nil
	}

	seed(t, s, "A")
	require.True(t, s.Dirty())

	err := s.Resync(ctx)
	require.ErrorIs(t, err, ErrPersistenceWrite)
	assert.True(t, s.Dirty())

	failing = false
	require.NoError(t, s.Resync(ctx))
	assert.False(t, s.Dirty())

	stored, err := task.DecodeTasks(repo.entries[task.TasksKey])
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{Title: "A", Priority: task.PriorityLow}}, stored)
}
