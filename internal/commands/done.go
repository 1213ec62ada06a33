package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                    { return "done" }
func (c *DoneCmd) Aliases() []string               { return nil }
func (c *DoneCmd) Synopsis() string                { return "Mark a task completed" }
func (c *DoneCmd) Usage() string                   { return "taskdeck done <ref>" }
func (c *DoneCmd) NeedsBackend() bool              { return true }
func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, env, args, true, errOut)
}

// UndoneCmd implements the undone command.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string                    { return "undone" }
func (c *UndoneCmd) Aliases() []string               { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string                { return "Mark a task not completed" }
func (c *UndoneCmd) Usage() string                   { return "taskdeck undone <ref>" }
func (c *UndoneCmd) NeedsBackend() bool              { return true }
func (c *UndoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, env, args, false, errOut)
}

// runSetCompleted is the shared implementation for done and undone.
func runSetCompleted(ctx context.Context, env *Env, args []string, completed bool, errOut io.Writer) int {
	task, code, ok := parseAndResolve(ctx, env, args, errOut)
	if !ok {
		return code
	}
	patch := service.Patch{Completed: service.Bool(completed)}
	if err := env.Session.Tasks.UpdateTask(ctx, task.ID, patch); err != nil {
		return codeFor(err)
	}
	return exitcode.Success
}
