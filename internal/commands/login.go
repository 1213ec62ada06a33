package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string                    { return "login" }
func (c *LoginCmd) Aliases() []string               { return nil }
func (c *LoginCmd) Synopsis() string                { return "Log in with an email address" }
func (c *LoginCmd) Usage() string                   { return "taskdeck login <email>" }
func (c *LoginCmd) NeedsBackend() bool              { return true }
func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	if err := env.Session.Users.Login(ctx, strings.TrimSpace(args[0])); err != nil {
		return codeFor(err)
	}
	return exitcode.Success
}
