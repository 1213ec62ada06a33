package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command. In defaults to os.Stdin.
type UICmd struct {
	In io.Reader
}

func (c *UICmd) Name() string                    { return "ui" }
func (c *UICmd) Aliases() []string               { return []string{"tui"} }
func (c *UICmd) Synopsis() string                { return "Open the interactive task list" }
func (c *UICmd) Usage() string                   { return "taskdeck ui" }
func (c *UICmd) NeedsBackend() bool              { return true }
func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	err := tui.Run(ctx, env.Session, env.Notifications, env.Config.Settings.UI.PageSize, in, out)
	if err != nil {
		env.Logger.Error("ui exited", "error", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
