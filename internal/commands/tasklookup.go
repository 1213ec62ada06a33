package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
)

// errTaskOutOfRange and errTaskNotFound are user errors from resolveTask.
var (
	errTaskOutOfRange = errors.New("task number out of range")
	errTaskNotFound   = errors.New("task not found")
)

// resolveTask fetches the collection and finds the referenced task in it.
// Positions count from 1 in server order, matching the list command.
func resolveTask(ctx context.Context, tasks *store.TaskStore, ref TaskRef) (service.Task, error) {
	if err := tasks.FetchTasks(ctx); err != nil {
		return service.Task{}, err
	}

	if ref.HasID() {
		task, ok := tasks.Find(ref.ID)
		if !ok {
			return service.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, ref.ID)
		}
		return task, nil
	}

	all := tasks.Tasks()
	if ref.Num < 1 || ref.Num > len(all) {
		return service.Task{}, fmt.Errorf("%w: %d", errTaskOutOfRange, ref.Num)
	}
	return all[ref.Num-1], nil
}

// parseAndResolve parses args as a task reference and resolves it,
// reporting failures to errOut. ok is false when the command should exit
// with code.
func parseAndResolve(ctx context.Context, env *Env, args []string, errOut io.Writer) (task service.Task, code int, ok bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	}

	task, err = resolveTask(ctx, env.Session.Tasks, ref)
	switch {
	case err == nil:
		return task, exitcode.Success, true
	case errors.Is(err, errTaskOutOfRange), errors.Is(err, errTaskNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	default:
		return service.Task{}, reportFetchError(errOut, err), false
	}
}

// reportFetchError prints a generic message for a failed fetch. The store
// raises no notification for fetches, and error detail goes to the debug log.
func reportFetchError(errOut io.Writer, err error) int {
	fmt.Fprintln(errOut, "error: could not load tasks")
	return codeFor(err)
}

// codeFor maps a store error to an exit code.
func codeFor(err error) int {
	var statusErr *service.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized, statusErr.StatusCode == http.StatusForbidden:
			return exitcode.AuthError
		case statusErr.StatusCode >= 400 && statusErr.StatusCode < 500:
			return exitcode.UserError
		}
	}
	if errors.Is(err, service.ErrNotFound) {
		return exitcode.UserError
	}
	return exitcode.BackendError
}
