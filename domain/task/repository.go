package task

import "context"

const (
	TasksKey  = "tasks"
	FilterKey = "filter"
)

// Repository is a durable key-value store for serialized engine state.
type Repository interface {
	// Load reports found=false when nothing was ever stored under key.
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
}
