package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskdeck/internal/notify"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
	"taskdeck/internal/testutil"
)

func TestLogin_Success(t *testing.T) {
	backend := testutil.NewFakeBackend()
	rec := &notify.Recorder{}
	s := store.NewUserStore(backend, rec, discard)

	require.False(t, s.Authenticated())
	require.NoError(t, s.Login(context.Background(), "ann@example.com"))

	require.True(t, s.Authenticated())
	require.Equal(t, []string{"ann@example.com"}, backend.Logins)
	require.Equal(t, []notify.Signal{{Category: notify.Login, Success: true}}, rec.Signals())
}

func TestLogin_FailureKeepsFlag(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.LoginErr = &service.StatusError{Method: "POST", Path: "/login", StatusCode: 401}
	rec := &notify.Recorder{}
	s := store.NewUserStore(backend, rec, discard)

	err := s.Login(context.Background(), "nobody@example.com")

	require.Error(t, err)
	require.True(t, service.IsStatus(err, 401))
	require.False(t, s.Authenticated())
	require.Equal(t, []notify.Signal{{Category: notify.Login, Success: false}}, rec.Signals())
}

func TestLogin_FailureAfterSuccessStaysAuthenticated(t *testing.T) {
	backend := testutil.NewFakeBackend()
	s := store.NewUserStore(backend, nil, discard)
	require.NoError(t, s.Login(context.Background(), "ann@example.com"))

	backend.LoginErr = &service.StatusError{Method: "POST", Path: "/login", StatusCode: 500}
	require.Error(t, s.Login(context.Background(), "ann@example.com"))

	require.True(t, s.Authenticated())
}

func TestSetAuthenticated_NoServerCall(t *testing.T) {
	backend := testutil.NewFakeBackend()
	rec := &notify.Recorder{}
	s := store.NewUserStore(backend, rec, discard)

	s.SetAuthenticated(true)
	require.True(t, s.Authenticated())
	s.SetAuthenticated(false)
	require.False(t, s.Authenticated())

	require.Empty(t, backend.Calls())
	require.Empty(t, rec.Signals())
}

func TestUserStore_SubscribeOnChangeOnly(t *testing.T) {
	s := store.NewUserStore(testutil.NewFakeBackend(), nil, discard)

	var seen []bool
	unsubscribe := s.Subscribe(func(v bool) { seen = append(seen, v) })

	s.SetAuthenticated(false)
	require.NoError(t, s.Login(context.Background(), "ann@example.com"))
	s.SetAuthenticated(true)
	s.SetAuthenticated(false)
	unsubscribe()
	s.SetAuthenticated(true)

	require.Equal(t, []bool{true, false}, seen)
}

func TestSession_SharesBackend(t *testing.T) {
	backend := testutil.NewFakeBackend()
	rec := &notify.Recorder{}
	sess := store.NewSession(backend, rec, discard)

	require.NoError(t, sess.Users.Login(context.Background(), "ann@example.com"))
	require.NoError(t, sess.Tasks.CreateTask(context.Background(), service.Draft{Name: "a"}))

	require.Equal(t, []string{"login", "create"}, backend.Calls())
	require.Len(t, rec.Signals(), 2)
}
