package task

import (
	"encoding/json"
	"fmt"
)

func EncodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func DecodeTasks(value string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func EncodeFilter(f Filter) string {
	return string(f)
}

func DecodeFilter(value string) (Filter, error) {
	return ParseFilter(value)
}
