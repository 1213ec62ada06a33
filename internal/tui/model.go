// Package tui is the interactive task list. It renders the task store,
// drives the store from key presses and shows store outcomes as toasts.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/notify"
	"taskdeck/internal/paginate"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
)

// ToastTTL is how long a toast stays on screen.
const ToastTTL = 5 * time.Second

// maxToasts caps the toast stack; older toasts are dropped first.
const maxToasts = 3

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// opDoneMsg is sent when a store operation started from the view returns.
// The outcome itself arrives separately as tasksMsg and toastMsg.
type opDoneMsg struct {
	err error
}

// toastExpiredMsg removes the toast with the given id.
type toastExpiredMsg struct {
	id int
}

type toast struct {
	id     int
	signal notify.Signal
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	tasks  *store.TaskStore
	users  *store.UserStore
	bridge *bridge

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	pageSize      int
	items         []service.Task
	page          int
	cursor        int // index within the current page
	authenticated bool
	pending       int

	mode      mode
	form      *form
	confirmID string

	toasts    []toast
	nextToast int
}

// New creates a model over sess. Store events reach it only once the
// bridge is attached, which Run does.
func New(ctx context.Context, sess *store.Session, pageSize int) Model {
	if pageSize < 1 {
		pageSize = 1
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle
	return Model{
		ctx:           ctx,
		tasks:         sess.Tasks,
		users:         sess.Users,
		bridge:        newBridge(),
		keys:          DefaultKeyMap,
		help:          help.New(),
		spinner:       sp,
		pageSize:      pageSize,
		items:         sess.Tasks.Tasks(),
		page:          1,
		authenticated: sess.Users.Authenticated(),
	}
}

// Run shows the task list until the user quits or ctx is cancelled.
// While it runs, relay delivers signals to the view instead of its
// previous target.
func Run(ctx context.Context, sess *store.Session, relay *notify.Relay, pageSize int, in io.Reader, out io.Writer) error {
	m := New(ctx, sess, pageSize)
	detach := m.bridge.attach(sess, relay)
	defer detach()
	defer m.bridge.close()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model. It starts listening for store events and
// fetches the collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.listen(), m.spinner.Tick, m.fetch())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)

	case tasksMsg:
		m.setItems(msg.tasks)
		return m, m.bridge.listen()

	case authMsg:
		m.authenticated = msg.authenticated
		return m, m.bridge.listen()

	case toastMsg:
		expire := m.pushToast(msg.signal)
		return m, tea.Batch(m.bridge.listen(), expire)

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case opDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(m.page - 1)

	case key.Matches(msg, m.keys.NextPage):
		m.setPage(m.page + 1)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch()

	case key.Matches(msg, m.keys.New):
		m.openForm(newCreateForm())

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.selected(); ok {
			m.openForm(newEditForm(task))
		}

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			patch := service.Patch{Completed: service.Bool(!task.Completed)}
			return m.start(func(ctx context.Context) error {
				return m.tasks.UpdateTask(ctx, task.ID, patch)
			})
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.confirmID = task.ID
		}

	case key.Matches(msg, m.keys.Login):
		m.openForm(newLoginForm())

	case key.Matches(msg, m.keys.Logout):
		m.users.SetAuthenticated(false)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.mode = modeList
	m.confirmID = ""
	switch msg.String() {
	case "y", "Y":
		return m.start(func(ctx context.Context) error {
			return m.tasks.DeleteTask(ctx, id)
		})
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "down":
		m.form.move(1)
		return m, nil
	case "shift+tab", "up":
		m.form.move(-1)
		return m, nil
	case "enter":
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

// submitForm validates the form and starts the matching store operation.
// Validation errors keep the form open.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	switch f.kind {
	case formCreate:
		draft, err := f.draft()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.closeForm()
		return m.start(func(ctx context.Context) error {
			return m.tasks.CreateTask(ctx, draft)
		})

	case formEdit:
		patch, err := f.patch()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.closeForm()
		if patch.IsEmpty() {
			return m, nil
		}
		id := f.taskID
		return m.start(func(ctx context.Context) error {
			return m.tasks.UpdateTask(ctx, id, patch)
		})

	case formLogin:
		email, err := f.email()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.closeForm()
		return m.start(func(ctx context.Context) error {
			return m.users.Login(ctx, email)
		})
	}
	return m, nil
}

func (m *Model) openForm(f *form) {
	m.form = f
	m.mode = modeForm
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeList
}

// start runs op off the event loop and counts it as pending until it
// returns.
func (m Model) start(op func(context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	ctx := m.ctx
	return m, func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

func (m Model) fetch() tea.Cmd {
	tasks := m.tasks
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: tasks.FetchTasks(ctx)}
	}
}

func (m *Model) setItems(tasks []service.Task) {
	m.items = tasks
	m.page = paginate.Clamp(m.page, len(tasks), m.pageSize)
	m.clampCursor()
}

func (m *Model) setPage(page int) {
	page = paginate.Clamp(page, len(m.items), m.pageSize)
	if page != m.page {
		m.page = page
		m.cursor = 0
	}
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visible returns the tasks on the current page.
func (m Model) visible() []service.Task {
	return paginate.Page(m.items, m.page, m.pageSize)
}

func (m Model) selected() (service.Task, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return service.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) pushToast(s notify.Signal) tea.Cmd {
	id := m.nextToast
	m.nextToast++
	m.toasts = append(m.toasts, toast{id: id, signal: s})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Tick(ToastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}
