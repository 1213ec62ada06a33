package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
	"taskdeck/internal/testutil"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// finish runs the command of a started store operation and feeds its
// completion back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(opDoneMsg)
	require.True(t, ok, "expected opDoneMsg, got %T", msg)
	return send(t, m, done)
}

func seededModel(t *testing.T, n, pageSize int) (Model, *testutil.FakeBackend, *store.Session) {
	t.Helper()
	backend := testutil.NewFakeBackend()
	for i := 1; i <= n; i++ {
		backend.AddTask(fmt.Sprintf("t%d", i), fmt.Sprintf("Task %d", i))
	}
	sess := store.NewSession(backend, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, sess.Tasks.FetchTasks(context.Background()))
	return New(context.Background(), sess, pageSize), backend, sess
}

func TestNew_StartsFromStoreSnapshot(t *testing.T) {
	m, _, _ := seededModel(t, 3, 8)

	require.Len(t, m.items, 3)
	require.Equal(t, 1, m.page)
	require.False(t, m.authenticated)
	require.Contains(t, m.View(), "  1  [ ] Task 1")
	require.Contains(t, m.View(), "page 1 of 1 (3 tasks)")
}

func TestView_Empty(t *testing.T) {
	m, _, _ := seededModel(t, 0, 8)
	require.Contains(t, m.View(), "no tasks. press n to create one.")
}

func TestCursorAndPaging(t *testing.T) {
	m, _, _ := seededModel(t, 10, 4)

	m, _ = press(t, m, "k")
	require.Equal(t, 0, m.cursor)
	for range 5 {
		m, _ = press(t, m, "j")
	}
	require.Equal(t, 3, m.cursor, "cursor stops at the last row of the page")

	m, _ = press(t, m, "right")
	require.Equal(t, 2, m.page)
	require.Equal(t, 0, m.cursor)
	task, ok := m.selected()
	require.True(t, ok)
	require.Equal(t, "t5", task.ID)

	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right")
	require.Equal(t, 3, m.page)
	require.Len(t, m.visible(), 2)

	m, _ = press(t, m, "left")
	require.Equal(t, 2, m.page)
}

func TestTasksMsg_ClampsPageAndCursor(t *testing.T) {
	m, _, _ := seededModel(t, 10, 4)
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "j")
	require.Equal(t, 3, m.page)

	m = send(t, m, tasksMsg{tasks: []service.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}})

	require.Equal(t, 1, m.page)
	require.Equal(t, 1, m.cursor)

	m = send(t, m, tasksMsg{tasks: []service.Task{}})
	require.Equal(t, 1, m.page)
	require.Equal(t, 0, m.cursor)
	_, ok := m.selected()
	require.False(t, ok)
}

func TestToggle_StartsUpdate(t *testing.T) {
	m, backend, sess := seededModel(t, 2, 8)
	m, _ = press(t, m, "j")

	m, cmd := press(t, m, "x")
	require.Equal(t, 1, m.pending)
	require.Contains(t, m.View(), "working")

	m = finish(t, m, cmd)
	require.Equal(t, 0, m.pending)
	require.Equal(t, []string{"list", "update t2"}, backend.Calls())

	task, ok := sess.Tasks.Find("t2")
	require.True(t, ok)
	require.True(t, task.Completed)
}

func TestDelete_NeedsConfirmation(t *testing.T) {
	m, backend, _ := seededModel(t, 2, 8)

	m, cmd := press(t, m, "d")
	require.Nil(t, cmd)
	require.Equal(t, modeConfirmDelete, m.mode)
	require.Contains(t, m.View(), `Delete "Task 1"? (y/n)`)

	m, cmd = press(t, m, "n")
	require.Nil(t, cmd)
	require.Equal(t, modeList, m.mode)
	require.Equal(t, []string{"list"}, backend.Calls())

	m, _ = press(t, m, "d")
	m, cmd = press(t, m, "y")
	m = finish(t, m, cmd)
	require.Equal(t, []string{"list", "delete t1"}, backend.Calls())
	require.Equal(t, modeList, m.mode)
}

func TestCreateForm(t *testing.T) {
	m, backend, _ := seededModel(t, 0, 8)

	m, _ = press(t, m, "n")
	require.Equal(t, modeForm, m.mode)
	require.Contains(t, m.View(), "New task")

	m, cmd := press(t, m, "enter")
	require.Nil(t, cmd)
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, "name is required", m.form.err)

	m, _ = press(t, m, "Buy milk")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tomorrow")
	m, cmd = press(t, m, "enter")
	require.Nil(t, cmd)
	require.Equal(t, "due date must be YYYY-MM-DD", m.form.err)

	m.form.inputs[2].SetValue("2024-05-01")
	m, cmd = press(t, m, "enter")
	require.Equal(t, modeList, m.mode)
	finish(t, m, cmd)

	require.Equal(t, []service.Task{{ID: "t1", Name: "Buy milk", DueDate: "2024-05-01"}}, backend.Tasks())
}

func TestCreateForm_EscCancels(t *testing.T) {
	m, backend, _ := seededModel(t, 0, 8)

	m, _ = press(t, m, "n")
	m, _ = press(t, m, "Buy milk")
	m, cmd := press(t, m, "esc")

	require.Nil(t, cmd)
	require.Equal(t, modeList, m.mode)
	require.Nil(t, m.form)
	require.Equal(t, []string{"list"}, backend.Calls())
}

func TestEditForm_SendsChangedFieldsOnly(t *testing.T) {
	f := newEditForm(service.Task{ID: "t1", Name: "Buy milk", Description: "2 liters", DueDate: "2024-05-01"})

	p, err := f.patch()
	require.NoError(t, err)
	require.True(t, p.IsEmpty())

	f.inputs[1].SetValue("")
	p, err = f.patch()
	require.NoError(t, err)
	require.Nil(t, p.Name)
	require.Nil(t, p.DueDate)
	require.Equal(t, service.String(""), p.Description)

	f.inputs[0].SetValue("  ")
	_, err = f.patch()
	require.ErrorIs(t, err, errNameRequired)
}

func TestEditForm_IgnoresSurroundingWhitespace(t *testing.T) {
	f := newEditForm(service.Task{ID: "t1", Name: " Buy milk ", Description: "2 liters\n"})

	p, err := f.patch()
	require.NoError(t, err)
	require.True(t, p.IsEmpty(), "untouched fields must not be sent")

	f.inputs[0].SetValue("Buy oat milk")
	p, err = f.patch()
	require.NoError(t, err)
	require.Equal(t, service.String("Buy oat milk"), p.Name)
	require.Nil(t, p.Description)
}

func TestEditForm_Submit(t *testing.T) {
	m, backend, _ := seededModel(t, 1, 8)

	m, _ = press(t, m, "e")
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, "t1", m.form.taskID)

	m, cmd := press(t, m, "enter")
	require.Nil(t, cmd, "unchanged form sends nothing")
	require.Equal(t, modeList, m.mode)

	m, _ = press(t, m, "e")
	m.form.inputs[0].SetValue("Renamed")
	m, cmd = press(t, m, "enter")
	finish(t, m, cmd)

	require.Equal(t, []string{"list", "update t1"}, backend.Calls())
	require.Equal(t, "Renamed", backend.Tasks()[0].Name)
}

func TestLoginForm(t *testing.T) {
	m, backend, sess := seededModel(t, 0, 8)

	m, _ = press(t, m, "l")
	m, cmd := press(t, m, "enter")
	require.Nil(t, cmd)
	require.Equal(t, "email is required", m.form.err)

	m, _ = press(t, m, "ann@example.com")
	m, cmd = press(t, m, "enter")
	finish(t, m, cmd)

	require.Equal(t, []string{"ann@example.com"}, backend.Logins)
	require.True(t, sess.Users.Authenticated())
}

func TestLogout_ClearsFlagWithoutCall(t *testing.T) {
	m, backend, sess := seededModel(t, 0, 8)
	sess.Users.SetAuthenticated(true)

	m, cmd := press(t, m, "o")
	require.Nil(t, cmd)
	require.False(t, sess.Users.Authenticated())
	require.Equal(t, []string{"list"}, backend.Calls())
}

func TestAuthMsg_UpdatesHeader(t *testing.T) {
	m, _, _ := seededModel(t, 0, 8)
	require.Contains(t, m.View(), "anonymous")

	m = send(t, m, authMsg{authenticated: true})
	require.Contains(t, m.View(), "logged in")
}

func TestToasts(t *testing.T) {
	m, _, _ := seededModel(t, 0, 8)

	m = send(t, m, toastMsg{signal: notify.Signal{Category: notify.Created, Success: true}})
	require.Contains(t, m.View(), "Successfully created!")

	for _, c := range []notify.Category{notify.Updated, notify.Deleted, notify.Login} {
		m = send(t, m, toastMsg{signal: notify.Signal{Category: c, Success: false}})
	}
	require.Len(t, m.toasts, maxToasts)
	require.NotContains(t, m.View(), "Successfully created!")
	require.Contains(t, m.View(), "Something went wrong!")

	m = send(t, m, toastExpiredMsg{id: m.toasts[0].id})
	require.Len(t, m.toasts, maxToasts-1)
	require.NotContains(t, m.View(), "Failed to update.")
}

func TestQuit(t *testing.T) {
	m, _, _ := seededModel(t, 0, 8)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestBridge_DeliversStoreEvents(t *testing.T) {
	backend := testutil.NewFakeBackend()
	previous := &notify.Recorder{}
	relay := notify.NewRelay(previous)
	sess := store.NewSession(backend, relay, slog.New(slog.DiscardHandler))

	b := newBridge()
	detach := b.attach(sess, relay)

	require.NoError(t, sess.Tasks.CreateTask(context.Background(), service.Draft{Name: "a"}))
	sess.Users.SetAuthenticated(true)

	listen := b.listen()
	msgs := []tea.Msg{listen(), listen(), listen()}
	require.Equal(t, tasksMsg{tasks: []service.Task{{ID: "t1", Name: "a"}}}, msgs[0])
	require.Equal(t, toastMsg{signal: notify.Signal{Category: notify.Created, Success: true}}, msgs[1])
	require.Equal(t, authMsg{authenticated: true}, msgs[2])
	require.Empty(t, previous.Signals())

	detach()
	require.NoError(t, sess.Tasks.DeleteTask(context.Background(), "t1"))
	require.Len(t, previous.Signals(), 1, "relay is restored after detach")

	b.close()
	done := make(chan tea.Msg, 1)
	go func() { done <- b.listen()() }()
	select {
	case msg := <-done:
		require.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("listen did not return after close")
	}
}

func TestView_HelpOnlyInList(t *testing.T) {
	m, _, _ := seededModel(t, 1, 8)
	require.True(t, strings.Contains(m.View(), "quit"))

	m, _ = press(t, m, "n")
	require.False(t, strings.Contains(m.View(), "q quit"))
}
