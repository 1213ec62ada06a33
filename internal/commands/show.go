package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string                    { return "show" }
func (c *ShowCmd) Aliases() []string               { return nil }
func (c *ShowCmd) Synopsis() string                { return "Print every field of a task" }
func (c *ShowCmd) Usage() string                   { return "taskdeck show <ref>" }
func (c *ShowCmd) NeedsBackend() bool              { return true }
func (c *ShowCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	task, code, ok := parseAndResolve(ctx, env, args, errOut)
	if !ok {
		return code
	}
	output.FormatDetail(out, task)
	return exitcode.Success
}
