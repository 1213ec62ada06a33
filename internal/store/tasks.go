// Package store holds the client-side task and user state and keeps it
// synchronized with a backend.
//
// Stores are confirmed-only: local state changes after the server has
// answered, never before. Every successful fetch, create or update replaces
// the collection with the list the server returned. A successful delete
// removes the matching task locally, since the server answers with no body.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
)

// TaskStore owns the local task collection.
type TaskStore struct {
	api      service.TaskAPI
	notifier notify.Notifier
	logger   *slog.Logger
	fetches  singleflight.Group

	mu       sync.Mutex
	tasks      []service.Task
	issued     uint64 // last sequence handed out
	applied    uint64 // sequence of the last list response applied
	inFlight   int
	tombstones []tombstone
	subs       []subscription
	nextSub    int
}

// tombstone is a confirmed delete that list responses issued at or before
// seq may not reflect yet.
type tombstone struct {
	id  string
	seq uint64
}

type subscription struct {
	id int
	fn func([]service.Task)
}

// NewTaskStore creates an empty TaskStore backed by api.
// A nil notifier discards signals; a nil logger uses slog.Default().
func NewTaskStore(api service.TaskAPI, notifier notify.Notifier, logger *slog.Logger) *TaskStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		api:      api,
		notifier: notifier,
		logger:   logger.With("store", "tasks"),
	}
}

// Tasks returns a copy of the current collection.
func (s *TaskStore) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Find returns the task with the given ID from the local collection.
func (s *TaskStore) Find(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Loading reports whether any operation is waiting on the backend.
func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Subscribe registers fn to be called with a copy of the collection after
// every change. The returned function removes the subscription.
func (s *TaskStore) Subscribe(fn func([]service.Task)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// FetchTasks replaces the collection with the server's list.
// Failures leave the collection untouched and raise no notification.
//
// Concurrent calls share one request. The shared request is not cancelled
// with any single caller; each caller stops waiting when its own ctx is
// done. A nil error means the collection is at least as new as the shared
// response, which may have been superseded by a later mutation.
func (s *TaskStore) FetchTasks(ctx context.Context) error {
	shared := context.WithoutCancel(ctx)
	ch := s.fetches.DoChan("fetch", func() (any, error) {
		seq := s.begin()
		tasks, err := s.api.ListTasks(shared)
		if err != nil {
			s.end()
			s.logger.Error("fetch tasks failed", "error", err)
			return nil, fmt.Errorf("fetch tasks: %w", err)
		}
		s.reconcile(seq, tasks)
		return nil, nil
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("fetch tasks: %w", ctx.Err())
	}
}

// CreateTask sends draft to the server and reconciles with the response.
// When the backend applied the draft but could not list the collection
// afterwards, the create still reports success and the collection is left
// for the next fetch.
func (s *TaskStore) CreateTask(ctx context.Context, draft service.Draft) error {
	seq := s.begin()
	tasks, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		s.end()
		if appliedWithoutList(err) {
			s.logger.Warn("create task applied, collection not refreshed", "name", draft.Name, "error", err)
			s.notifier.Notify(notify.Signal{Category: notify.Created, Success: true})
			return nil
		}
		s.logger.Error("create task failed", "name", draft.Name, "error", err)
		s.notifier.Notify(notify.Signal{Category: notify.Created, Success: false})
		return fmt.Errorf("create task: %w", err)
	}
	s.reconcile(seq, tasks)
	s.notifier.Notify(notify.Signal{Category: notify.Created, Success: true})
	return nil
}

// UpdateTask sends patch for the task with the given ID and reconciles
// with the response.
func (s *TaskStore) UpdateTask(ctx context.Context, id string, patch service.Patch) error {
	seq := s.begin()
	tasks, err := s.api.UpdateTask(ctx, id, patch)
	if err != nil {
		s.end()
		if appliedWithoutList(err) {
			s.logger.Warn("update task applied, collection not refreshed", "id", id, "error", err)
			s.notifier.Notify(notify.Signal{Category: notify.Updated, Success: true})
			return nil
		}
		s.logger.Error("update task failed", "id", id, "error", err)
		s.notifier.Notify(notify.Signal{Category: notify.Updated, Success: false})
		return fmt.Errorf("update task %s: %w", id, err)
	}
	s.reconcile(seq, tasks)
	s.notifier.Notify(notify.Signal{Category: notify.Updated, Success: true})
	return nil
}

// DeleteTask deletes the task with the given ID and removes it locally.
// Deleting an ID that is not held locally is not an error.
func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.end()
		s.logger.Error("delete task failed", "id", id, "error", err)
		s.notifier.Notify(notify.Signal{Category: notify.Deleted, Success: false})
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	s.remove(id)
	s.notifier.Notify(notify.Signal{Category: notify.Deleted, Success: true})
	return nil
}

// begin hands out the next sequence number and marks an operation in flight.
func (s *TaskStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.inFlight++
	return s.issued
}

func (s *TaskStore) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	s.settleLocked()
}

// reconcile replaces the collection with tasks unless a response to a
// later list-returning operation has already been applied. Tasks deleted
// since the request was issued are filtered out of the response.
func (s *TaskStore) reconcile(seq uint64, tasks []service.Task) {
	s.mu.Lock()
	s.inFlight--
	if applied := s.applied; seq <= applied {
		s.settleLocked()
		s.mu.Unlock()
		s.logger.Debug("discarding stale response", "seq", seq, "applied", applied)
		return
	}
	s.applied = seq
	s.tasks = slices.DeleteFunc(slices.Clone(tasks), func(t service.Task) bool {
		return s.tombstonedLocked(t.ID, seq)
	})
	if s.tasks == nil {
		s.tasks = []service.Task{}
	}
	s.tombstones = slices.DeleteFunc(s.tombstones, func(ts tombstone) bool { return ts.seq <= seq })
	s.settleLocked()
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot, subs)
}

// remove filters id out of the collection. A confirmed delete applies
// regardless of ordering; list responses still in flight are filtered
// through its tombstone.
func (s *TaskStore) remove(id string) {
	s.mu.Lock()
	s.inFlight--
	if s.inFlight > 0 {
		s.tombstones = append(s.tombstones, tombstone{id: id, seq: s.issued})
	}
	s.settleLocked()
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
	if len(s.tasks) == before {
		s.mu.Unlock()
		return
	}
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot, subs)
}

// tombstonedLocked reports whether a response to the request issued at
// seq may still contain the deleted task id.
func (s *TaskStore) tombstonedLocked(id string, seq uint64) bool {
	for _, ts := range s.tombstones {
		if ts.id == id && ts.seq >= seq {
			return true
		}
	}
	return false
}

// settleLocked drops every tombstone once nothing is in flight.
func (s *TaskStore) settleLocked() {
	if s.inFlight == 0 {
		s.tombstones = nil
	}
}

// appliedWithoutList reports whether the backend applied a mutation but
// could not return the collection afterwards.
func appliedWithoutList(err error) bool {
	var refreshErr *service.RefreshError
	return errors.As(err, &refreshErr)
}

func (s *TaskStore) snapshotLocked() ([]service.Task, []func([]service.Task)) {
	subs := make([]func([]service.Task), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub.fn)
	}
	return slices.Clone(s.tasks), subs
}

func (s *TaskStore) publish(tasks []service.Task, subs []func([]service.Task)) {
	for _, fn := range subs {
		fn(slices.Clone(tasks))
	}
}
