package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
// It only clears the in-memory flag; no request is made.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string                    { return "logout" }
func (c *LogoutCmd) Aliases() []string               { return nil }
func (c *LogoutCmd) Synopsis() string                { return "Forget the login for this session" }
func (c *LogoutCmd) Usage() string                   { return "taskdeck logout" }
func (c *LogoutCmd) NeedsBackend() bool              { return true }
func (c *LogoutCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	env.Session.Users.SetAuthenticated(false)
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
