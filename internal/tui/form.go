package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/service"
)

type formKind int

const (
	formCreate formKind = iota
	formEdit
	formLogin
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldDue         = "due"
	fieldEmail       = "email"
)

type formField struct {
	key   string
	label string
	value string
}

// form is a stack of text inputs. tab and shift+tab move focus.
type form struct {
	kind   formKind
	title  string
	taskID string
	fields []formField
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(kind formKind, title string, fields []formField) *form {
	f := &form{kind: kind, title: title, fields: fields}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-12s", field.label+":")
		in.SetValue(field.value)
		in.CharLimit = 256
		if i == 0 {
			in.Focus()
		}
		f.inputs = append(f.inputs, in)
	}
	return f
}

func newCreateForm() *form {
	return newForm(formCreate, "New task", []formField{
		{key: fieldName, label: "Name"},
		{key: fieldDescription, label: "Description"},
		{key: fieldDue, label: "Due"},
	})
}

func newEditForm(task service.Task) *form {
	f := newForm(formEdit, "Edit task", []formField{
		{key: fieldName, label: "Name", value: task.Name},
		{key: fieldDescription, label: "Description", value: task.Description},
		{key: fieldDue, label: "Due", value: task.DueDate},
	})
	f.taskID = task.ID
	return f
}

func newLoginForm() *form {
	return newForm(formLogin, "Log in", []formField{
		{key: fieldEmail, label: "Email"},
	})
}

// move shifts focus by dir, wrapping around.
func (f *form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(key string) string {
	for i, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

// changed reports the trimmed value of key and whether it differs from the
// value the form was opened with.
func (f *form) changed(key string) (string, bool) {
	for i, field := range f.fields {
		if field.key == key {
			v := strings.TrimSpace(f.inputs[i].Value())
			return v, v != strings.TrimSpace(field.value)
		}
	}
	return "", false
}

var errNameRequired = errors.New("name is required")

func (f *form) draft() (service.Draft, error) {
	name := f.value(fieldName)
	if name == "" {
		return service.Draft{}, errNameRequired
	}
	due, err := checkDue(f.value(fieldDue))
	if err != nil {
		return service.Draft{}, err
	}
	return service.Draft{
		Name:        name,
		Description: f.value(fieldDescription),
		DueDate:     due,
	}, nil
}

// patch carries only the fields the user changed.
func (f *form) patch() (service.Patch, error) {
	var p service.Patch
	if name, ok := f.changed(fieldName); ok {
		if name == "" {
			return service.Patch{}, errNameRequired
		}
		p.Name = service.String(name)
	}
	if desc, ok := f.changed(fieldDescription); ok {
		p.Description = service.String(desc)
	}
	if due, ok := f.changed(fieldDue); ok {
		due, err := checkDue(due)
		if err != nil {
			return service.Patch{}, err
		}
		p.DueDate = service.String(due)
	}
	return p, nil
}

func (f *form) email() (string, error) {
	email := f.value(fieldEmail)
	if email == "" {
		return "", errors.New("email is required")
	}
	return email, nil
}

func checkDue(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("due date must be YYYY-MM-DD")
	}
	return s, nil
}

func (f *form) view() string {
	lines := []string{titleStyle.Render(f.title), ""}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, "", failureStyle.Render(f.err))
	}
	lines = append(lines, "", dimStyle.Render("enter save  tab next field  esc cancel"))
	return strings.Join(lines, "\n")
}
