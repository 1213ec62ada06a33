package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	name        string
	description string
	due         string
	completed   bool
}

// SetDraftFields sets the optional draft fields (for testing).
func (c *AddCmd) SetDraftFields(description, due string, completed bool) {
	c.description, c.due, c.completed = description, due, completed
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskdeck add [--description <text>] [--due <date>] [--completed] (--name <name> | <name...>)" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.name, c.description, c.due, c.completed = "", "", "", false
	fs.StringVarP(&c.name, "name", "n", "", "task name")
	fs.StringVarP(&c.description, "description", "d", "", "task description")
	fs.StringVar(&c.due, "due", "", "due date (YYYY-MM-DD)")
	fs.BoolVar(&c.completed, "completed", false, "create the task already completed")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	name := c.name
	if len(args) > 0 {
		if name != "" {
			fmt.Fprintln(errOut, "error: cannot use both --name and a positional name")
			return exitcode.UserError
		}
		name = strings.Join(args, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}
	due, err := normalizeDue(c.due)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	draft := service.Draft{
		Name:        name,
		Description: c.description,
		DueDate:     due,
		Completed:   c.completed,
	}
	if err := env.Session.Tasks.CreateTask(ctx, draft); err != nil {
		return codeFor(err)
	}
	return exitcode.Success
}
