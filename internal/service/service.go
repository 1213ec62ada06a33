// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import (
	"context"
	"errors"
	"fmt"
)

// TaskAPI is the remote side of the task store.
// Stores never import a transport directly; backends implement this.
type TaskAPI interface {
	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the full updated collection.
	CreateTask(ctx context.Context, draft Draft) ([]Task, error)

	// UpdateTask applies patch to the task with the given ID and returns
	// the full updated collection.
	UpdateTask(ctx context.Context, id string, patch Patch) ([]Task, error)

	// DeleteTask deletes the task with the given ID.
	// A successful delete carries no collection.
	DeleteTask(ctx context.Context, id string) error
}

// UserAPI is the remote side of the user store.
type UserAPI interface {
	// Login confirms the given email with the server.
	Login(ctx context.Context, email string) error
}

// Backend combines everything a session needs from the server.
type Backend interface {
	TaskAPI
	UserAPI
}

// ErrNotFound is returned when the referenced task does not exist.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the server answers with a status code
// other than the one the operation expects.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}
	return false
}

// RefreshError is returned by a backend that applied a mutation but could
// not read the collection back afterwards. The mutation must not be retried.
type RefreshError struct {
	Op  string
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("%s applied, listing tasks failed: %v", e.Op, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
