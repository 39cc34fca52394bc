package task

import "fmt"

type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterIncomplete:
		return true
	}
	return false
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	default:
		return true
	}
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}
