package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
)

// UserStore owns the authentication flag.
// The flag starts false, becomes true only after a confirmed login and
// returns to false only through SetAuthenticated. It is never persisted.
type UserStore struct {
	api      service.UserAPI
	notifier notify.Notifier
	logger   *slog.Logger

	mu            sync.Mutex
	authenticated bool
	subs          []userSubscription
	nextSub       int
}

type userSubscription struct {
	id int
	fn func(bool)
}

// NewUserStore creates an anonymous UserStore backed by api.
func NewUserStore(api service.UserAPI, notifier notify.Notifier, logger *slog.Logger) *UserStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		api:      api,
		notifier: notifier,
		logger:   logger.With("store", "users"),
	}
}

// Authenticated reports the current flag.
func (s *UserStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Subscribe registers fn to be called with the flag after every change.
func (s *UserStore) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, userSubscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub userSubscription) bool { return sub.id == id })
	}
}

// Login confirms email with the server and marks the user authenticated.
// A failed login leaves the flag unchanged.
func (s *UserStore) Login(ctx context.Context, email string) error {
	if err := s.api.Login(ctx, email); err != nil {
		s.logger.Error("login failed", "email", email, "error", err)
		s.notifier.Notify(notify.Signal{Category: notify.Login, Success: false})
		return fmt.Errorf("login: %w", err)
	}
	s.set(true)
	s.notifier.Notify(notify.Signal{Category: notify.Login, Success: true})
	return nil
}

// SetAuthenticated assigns the flag directly, without a server call.
// Logout is SetAuthenticated(false).
func (s *UserStore) SetAuthenticated(value bool) {
	s.set(value)
}

func (s *UserStore) set(value bool) {
	s.mu.Lock()
	changed := s.authenticated != value
	s.authenticated = value
	subs := make([]func(bool), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub.fn)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(value)
	}
}
