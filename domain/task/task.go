package task

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date form used for DueDate.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Completed   bool     `json:"completed"`
}

// Due parses DueDate. It reports false for an empty or malformed date.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Draft is the uncommitted input used while composing a task.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
}

func NewDraft() Draft {
	return Draft{Priority: PriorityLow}
}

// Validate only checks the title; every other field is accepted as given.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Task builds an incomplete task from the draft.
func (d Draft) Task() Task {
	priority := d.Priority
	if priority == "" {
		priority = PriorityLow
	}
	return Task{
		Title:       d.Title,
		Description: d.Description,
		Priority:    priority,
		DueDate:     d.DueDate,
	}
}

// Patch holds the fields to overwrite on an existing task. Nil fields are left alone.
// Completion is not patchable, use a toggle instead.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
}

func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil
}

// IndexedTask pairs a task with its position in the unfiltered collection.
type IndexedTask struct {
	Index int  `json:"index"`
	Task  Task `json:"task"`
}
