// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/service"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {NAME}  (due {DATE})\n"; the due part is omitted
// when the task has no due date.
func FormatTask(w io.Writer, num int, task service.Task) {
	line := fmt.Sprintf("%4d  %s %s", num, checkbox(task.Completed), normalizeName(task.Name))
	if due := strings.TrimSpace(task.DueDate); due != "" {
		line += fmt.Sprintf("  (due %s)", due)
	}
	fmt.Fprintln(w, line)
}

// FormatPageFooter formats the "page X of Y" line shown under a page.
func FormatPageFooter(w io.Writer, page, pages, total int) {
	fmt.Fprintf(w, "page %d of %d (%d tasks)\n", page, pages, total)
}

// FormatDetail prints every field of a task, one per line.
func FormatDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "name:        %s\n", normalizeName(task.Name))
	fmt.Fprintf(w, "due:         %s\n", orDash(task.DueDate))
	fmt.Fprintf(w, "completed:   %t\n", task.Completed)
	fmt.Fprintf(w, "description: %s\n", orDash(task.Description))
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
