package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/domain/task"
)

func TestNew(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, New("json"))
	assert.IsType(t, &TextFormatter{}, New("text"))
	assert.IsType(t, &TextFormatter{}, New(""))
}

func TestJSONFormatter_FormatsIndexedTasks(t *testing.T) {
	formatter := NewJSONFormatter()
	data := []task.IndexedTask{{Index: 3, Task: task.Task{Title: "a", Priority: task.PriorityLow}}}

	result, err := formatter.Format(data)

	require.NoError(t, err)
	assertValidJSON(t, result)
	assert.Contains(t, result, `"index":3`)
	assert.Contains(t, result, `"title":"a"`)
}

func TestFormat_ReturnsErrorForUnmarshalableData(t *testing.T) {
	formatter := NewJSONFormatter()

	_, err := formatter.Format(make(chan int))

	assert.Error(t, err)
}

func TestTextFormatter_Table(t *testing.T) {
	formatter := NewTextFormatter()
	data := []task.IndexedTask{
		{Index: 0, Task: task.Task{Title: "Buy milk", Priority: task.PriorityLow}},
		{Index: 2, Task: task.Task{Title: "Pay rent", Priority: task.PriorityHigh, DueDate: "2024-07-01", Description: "line one\nline two", Completed: true}},
	}

	result, err := formatter.Format(data)
	require.NoError(t, err)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "INDEX"))
	assert.Contains(t, lines[1], "[ ]")
	assert.Contains(t, lines[2], "[x]")
	assert.Contains(t, lines[2], "line one line two")
}

func TestTextFormatter_Empty(t *testing.T) {
	result, err := NewTextFormatter().Format([]task.IndexedTask{})
	require.NoError(t, err)
	assert.Equal(t, "no tasks", result)
}

func TestTextFormatter_Filter(t *testing.T) {
	result, err := NewTextFormatter().Format(task.FilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", result)
}

func assertValidJSON(t *testing.T, s string) {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v), "expected valid JSON")
}

func TestTextFormatter_Draft(t *testing.T) {
	result, err := NewTextFormatter().Format(task.Draft{Title: "Buy milk", Priority: task.PriorityHigh, DueDate: "2030-01-02"})
	require.NoError(t, err)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"title:", "Buy", "milk"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"description:"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"priority:", "high"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"due:", "2030-01-02"}, strings.Fields(lines[3]))
}

func TestTextFormatter_EditState(t *testing.T) {
	f := NewTextFormatter()

	result, err := f.Format(EditState{Index: -1})
	require.NoError(t, err)
	assert.Equal(t, "not editing", result)

	result, err = f.Format(EditState{Editing: true, Index: 3})
	require.NoError(t, err)
	assert.Equal(t, "editing task 3", result)

	result, err = NewJSONFormatter().Format(EditState{Editing: true, Index: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"editing":true,"index":3}`, result)
}
