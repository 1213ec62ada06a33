// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"taskdeck/internal/config"
	"taskdeck/internal/notify"
	"taskdeck/internal/store"
)

// Env is what the dispatcher hands to a command.
type Env struct {
	// Config is always provided (config dir, paths, settings).
	Config *config.Config

	// Session is nil if NeedsBackend() returns false.
	Session *store.Session

	// Notifications carries store signals to the current renderer.
	// Commands that take over the terminal retarget it.
	Notifications *notify.Relay

	// Logger is the diagnostic channel.
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task API.
	// Commands like help, version and authorize return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	// It is called once per dispatch and must reset flag state.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
