package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
// Registry defaults to DefaultRegistry.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string                    { return "help" }
func (c *HelpCmd) Aliases() []string               { return nil }
func (c *HelpCmd) Synopsis() string                { return "Print usage" }
func (c *HelpCmd) Usage() string                   { return "taskdeck help [command]" }
func (c *HelpCmd) NeedsBackend() bool              { return false }
func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	if len(args) > 0 {
		cmd, ok := reg.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(aliases, ", "))
		}
		fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
		cmd.RegisterFlags(fs)
		if fs.HasFlags() {
			fmt.Fprintf(out, "\nFlags:\n%s", fs.FlagUsages())
		}
		fmt.Fprint(out, commonFlagsText)
		return exitcode.Success
	}

	fmt.Fprint(out, "Usage:\n  taskdeck                    List tasks (same as 'taskdeck list')\n  taskdeck <command> [common flags] [flags] [args]\n\nCommands:\n")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cmd := range reg.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Synopsis())
	}
	tw.Flush()
	fmt.Fprint(out, "\nTask references are a list position (3) or an explicit id (id:abc123).\n")
	fmt.Fprint(out, commonFlagsText)
	fmt.Fprint(out, "\nRun 'taskdeck help <command>' for a command's flags.\n")
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
