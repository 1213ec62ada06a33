package store

import (
	"log/slog"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
)

// Session bundles the stores a rendering layer works with.
// It is passed explicitly; there are no package-level stores.
type Session struct {
	Tasks *TaskStore
	Users *UserStore
}

// NewSession wires both stores to the same backend, notifier and logger.
func NewSession(backend service.Backend, notifier notify.Notifier, logger *slog.Logger) *Session {
	return &Session{
		Tasks: NewTaskStore(backend, notifier, logger),
		Users: NewUserStore(backend, notifier, logger),
	}
}
