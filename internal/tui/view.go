package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/paginate"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view())
	default:
		b.WriteString(m.renderList())
		if m.mode == modeConfirmDelete {
			b.WriteString("\n")
			b.WriteString(m.renderConfirm())
		}
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	if m.mode == modeList {
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	header := titleStyle.Render("taskdeck")
	if m.authenticated {
		header += "  " + successStyle.Render("● logged in")
	} else {
		header += "  " + dimStyle.Render("○ anonymous")
	}
	if m.pending > 0 || m.tasks.Loading() {
		header += "  " + m.spinner.View() + dimStyle.Render(" working")
	}
	return header
}

func (m Model) renderList() string {
	if len(m.items) == 0 {
		return dimStyle.Render("no tasks. press n to create one.")
	}

	start, _ := paginate.Window(len(m.items), m.page, m.pageSize)
	var lines []string
	for i, task := range m.visible() {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		name := task.Name
		if strings.TrimSpace(name) == "" {
			name = "(untitled)"
		}
		line := fmt.Sprintf("%3d  %s %s", start+i+1, check, name)
		if task.DueDate != "" {
			line += dimStyle.Render("  (due " + task.DueDate + ")")
		}

		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		case task.Completed:
			line = "  " + doneStyle.Render(line)
		default:
			line = "  " + textStyle.Render(line)
		}
		lines = append(lines, line)
	}

	pages := paginate.Pages(len(m.items), m.pageSize)
	lines = append(lines, "", dimStyle.Render(fmt.Sprintf("page %d of %d (%d tasks)", m.page, pages, len(m.items))))
	return strings.Join(lines, "\n")
}

func (m Model) renderConfirm() string {
	name := m.confirmID
	for _, task := range m.items {
		if task.ID == m.confirmID {
			name = task.Name
			break
		}
	}
	return failureStyle.Render(fmt.Sprintf("Delete %q? (y/n)", name))
}

func (m Model) renderToasts() string {
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		text := t.signal.Text()
		if text == "" {
			continue
		}
		if t.signal.Success {
			lines = append(lines, successStyle.Render(text))
		} else {
			lines = append(lines, failureStyle.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}
