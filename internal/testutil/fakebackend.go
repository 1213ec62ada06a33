// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"taskdeck/internal/service"
)

// FakeBackend is an in-memory implementation of service.Backend for testing.
// Mutations return the full collection, like the REST API does.
type FakeBackend struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	LoginErr      error

	// Logins records every email passed to Login.
	Logins []string
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{nextID: 1}
}

// AddTask appends a task with the given ID and name.
func (f *FakeBackend) AddTask(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Name: name})
}

// Seed replaces the collection.
func (f *FakeBackend) Seed(tasks ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = slices.Clone(tasks)
}

// Tasks returns the server-side collection.
func (f *FakeBackend) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

// Calls returns the operations performed, in order.
func (f *FakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// ListTasks implements service.TaskAPI.
func (f *FakeBackend) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.snapshotLocked(), nil
}

// CreateTask implements service.TaskAPI.
func (f *FakeBackend) CreateTask(ctx context.Context, draft service.Draft) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.CreateTaskErr != nil {
		return nil, f.CreateTaskErr
	}
	f.tasks = append(f.tasks, service.Task{
		ID:          fmt.Sprintf("t%d", f.nextID),
		Name:        draft.Name,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Completed:   draft.Completed,
	})
	f.nextID++
	return f.snapshotLocked(), nil
}

// UpdateTask implements service.TaskAPI.
func (f *FakeBackend) UpdateTask(ctx context.Context, id string, patch service.Patch) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update "+id)
	if f.UpdateTaskErr != nil {
		return nil, f.UpdateTaskErr
	}
	i := slices.IndexFunc(f.tasks, func(t service.Task) bool { return t.ID == id })
	if i < 0 {
		return nil, service.ErrNotFound
	}
	f.tasks[i] = patch.Apply(f.tasks[i])
	return f.snapshotLocked(), nil
}

// DeleteTask implements service.TaskAPI.
// Deleting an unknown ID succeeds, like an idempotent 204.
func (f *FakeBackend) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete "+id)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.tasks = slices.DeleteFunc(f.tasks, func(t service.Task) bool { return t.ID == id })
	return nil
}

// Login implements service.UserAPI.
func (f *FakeBackend) Login(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "login")
	f.Logins = append(f.Logins, email)
	return f.LoginErr
}

func (f *FakeBackend) snapshotLocked() []service.Task {
	out := slices.Clone(f.tasks)
	if out == nil {
		out = []service.Task{}
	}
	return out
}
