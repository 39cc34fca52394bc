// Package export renders a task view as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskmanager/domain/task"
)

var ErrUnknownFormat = errors.New("unknown export format")

var contentTypes = map[string]string{
	"json": "application/json",
	"csv":  "text/csv",
	"pdf":  "application/pdf",
}

func ContentType(format string) string {
	return contentTypes[strings.ToLower(format)]
}

// Export renders tasks in the given format. Indices are kept so a report
// line can be traced back to its task.
func Export(tasks []task.IndexedTask, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		return exportCSV(tasks)
	case "pdf":
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func exportCSV(tasks []task.IndexedTask) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"index", "title", "description", "priority", "due_date", "completed"})
	for _, it := range tasks {
		_ = w.Write([]string{
			strconv.Itoa(it.Index),
			it.Task.Title,
			it.Task.Description,
			string(it.Task.Priority),
			it.Task.DueDate,
			strconv.FormatBool(it.Task.Completed),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(tasks []task.IndexedTask) ([]byte, error) {
	return renderPDF(tasks, true)
}

// renderPDF uses the core Arial font, which is cp1252. UTF-8 text is
// translated so Latin-1 titles render correctly; other scripts are not
// supported and come out as substitutes.
func renderPDF(tasks []task.IndexedTask, compress bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Manager")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)

	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for _, it := range tasks {
		mark := "[ ]"
		if it.Task.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s (priority=%s", it.Index, mark, it.Task.Title, it.Task.Priority)
		if it.Task.DueDate != "" {
			line += ", due " + it.Task.DueDate
		}
		line += ")"
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		if it.Task.Description != "" {
			pdf.SetX(20)
			pdf.MultiCell(0, 5, tr(it.Task.Description), "0", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
