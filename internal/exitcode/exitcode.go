// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, rejected input).
	UserError = 1

	// AuthError indicates the server refused the credentials, or the
	// configuration needed to reach it is missing.
	AuthError = 2

	// BackendError indicates a network failure or server-side error.
	BackendError = 3
)
