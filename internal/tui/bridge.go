package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
)

// tasksMsg carries a task collection snapshot published by the store.
type tasksMsg struct {
	tasks []service.Task
}

// authMsg carries a change of the authentication flag.
type authMsg struct {
	authenticated bool
}

// toastMsg carries a store outcome to be shown as a toast.
type toastMsg struct {
	signal notify.Signal
}

// bridge moves store events from whatever goroutine raised them into the
// bubbletea message loop. One listen command is outstanding at a time and
// the model re-arms it after every event.
type bridge struct {
	events chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

func newBridge() *bridge {
	return &bridge{
		events: make(chan tea.Msg, 64),
		done:   make(chan struct{}),
	}
}

// send blocks until the message is queued or the bridge is closed.
func (b *bridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.done:
	}
}

// listen returns a command that waits for the next event.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}

// attach subscribes the bridge to both stores and points relay at it.
// The returned function undoes all three.
func (b *bridge) attach(sess *store.Session, relay *notify.Relay) func() {
	unsubTasks := sess.Tasks.Subscribe(func(tasks []service.Task) {
		b.send(tasksMsg{tasks: tasks})
	})
	unsubUsers := sess.Users.Subscribe(func(authenticated bool) {
		b.send(authMsg{authenticated: authenticated})
	})
	var prev notify.Notifier
	if relay != nil {
		prev = relay.Set(notify.Func(func(s notify.Signal) {
			b.send(toastMsg{signal: s})
		}))
	}
	return func() {
		unsubTasks()
		unsubUsers()
		if relay != nil {
			relay.Set(prev)
		}
	}
}
