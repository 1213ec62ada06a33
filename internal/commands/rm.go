package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string                    { return "rm" }
func (c *RmCmd) Aliases() []string               { return []string{"delete"} }
func (c *RmCmd) Synopsis() string                { return "Delete a task" }
func (c *RmCmd) Usage() string                   { return "taskdeck rm <ref>" }
func (c *RmCmd) NeedsBackend() bool              { return true }
func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	task, code, ok := parseAndResolve(ctx, env, args, errOut)
	if !ok {
		return code
	}
	if err := env.Session.Tasks.DeleteTask(ctx, task.ID); err != nil {
		return codeFor(err)
	}
	return exitcode.Success
}
