package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"taskmanager/app/services/taskstore"
	"taskmanager/domain/task"
)

type Container struct {
	Repository task.Repository
	TaskStore  *taskstore.Store
	close      func() error
}

// NewContainer opens storage and returns an initialized task store.
func NewContainer(ctx context.Context, cfg *Config, logger log.FieldLogger) (*Container, error) {
	repo, closeFn, err := OpenRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := taskstore.New(repo, taskstore.WithLogger(logger))
	if err != nil {
		closeFn()
		return nil, err
	}
	store.Initialize(ctx)

	return &Container{
		Repository: repo,
		TaskStore:  store,
		close:      closeFn,
	}, nil
}

func (c *Container) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
