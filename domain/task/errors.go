package task

import "errors"

var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrNotEditing      = errors.New("no task is being edited")
)
