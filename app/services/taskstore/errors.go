package taskstore

import "errors"

// Persistence errors never reach callers; they are logged and reflected by Dirty.
var (
	ErrPersistenceRead  = errors.New("persisted state unreadable")
	ErrPersistenceWrite = errors.New("persisted state not written")
	ErrRepositoryNil    = errors.New("task repository is nil")
)
