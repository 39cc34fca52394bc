package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"taskmanager/domain/task"
)

// Formatter interface for formatting output
type Formatter interface {
	Format(data any) (string, error)
}

// New returns the formatter registered under name, falling back to text.
func New(name string) Formatter {
	if name == "json" {
		return NewJSONFormatter()
	}
	return NewTextFormatter()
}

// JSONFormatter implements the Formatter interface for JSON output
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format formats data as JSON
func (f *JSONFormatter) Format(data any) (string, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// EditState reports which task, if any, is open in the edit form.
type EditState struct {
	Editing bool `json:"editing"`
	Index   int  `json:"index"`
}

// TextFormatter renders tasks as an aligned table for terminals.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Format(data any) (string, error) {
	switch v := data.(type) {
	case []task.IndexedTask:
		if len(v) == 0 {
			return "no tasks", nil
		}
		return table(v), nil
	case task.IndexedTask:
		return table([]task.IndexedTask{v}), nil
	case task.Filter:
		return string(v), nil
	case task.Draft:
		return draftText(v), nil
	case EditState:
		if !v.Editing {
			return "not editing", nil
		}
		return fmt.Sprintf("editing task %d", v.Index), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func table(tasks []task.IndexedTask) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tDONE\tTITLE\tPRIORITY\tDUE\tDESCRIPTION")
	for _, it := range tasks {
		done := " "
		if it.Task.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\t%s\t%s\n",
			it.Index, done, it.Task.Title, it.Task.Priority, it.Task.DueDate, oneLine(it.Task.Description))
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func draftText(d task.Draft) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "title:\t%s\n", d.Title)
	fmt.Fprintf(w, "description:\t%s\n", oneLine(d.Description))
	fmt.Fprintf(w, "priority:\t%s\n", d.Priority)
	fmt.Fprintf(w, "due:\t%s\n", d.DueDate)
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
