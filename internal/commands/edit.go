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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the flags given are sent.
type EditCmd struct {
	name        optionalString
	description optionalString
	due         optionalString
	completed   optionalBool
}

// SetName sets --name (for testing).
func (c *EditCmd) SetName(name string) { _ = c.name.Set(name) }

// SetDescription sets --description (for testing).
func (c *EditCmd) SetDescription(d string) { _ = c.description.Set(d) }

// SetDue sets --due (for testing).
func (c *EditCmd) SetDue(due string) { _ = c.due.Set(due) }

// SetCompleted sets --completed (for testing).
func (c *EditCmd) SetCompleted(done bool) { c.completed = optionalBool{value: done, set: true} }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change fields of a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--name <name>] [--description <text>] [--due <date>] [--completed[=false]] <ref>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	*c = EditCmd{}
	fs.VarP(&c.name, "name", "n", "new name")
	fs.VarP(&c.description, "description", "d", "new description (empty clears it)")
	fs.Var(&c.due, "due", "new due date, YYYY-MM-DD (empty clears it)")
	boolFlag(fs, &c.completed, "completed", "set the completed flag")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	patch, err := c.patch()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	task, code, ok := parseAndResolve(ctx, env, args, errOut)
	if !ok {
		return code
	}
	if err := env.Session.Tasks.UpdateTask(ctx, task.ID, patch); err != nil {
		return codeFor(err)
	}
	return exitcode.Success
}

func (c *EditCmd) patch() (service.Patch, error) {
	patch := service.Patch{
		Name:        c.name.ptr(),
		Description: c.description.ptr(),
		Completed:   c.completed.ptr(),
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return service.Patch{}, fmt.Errorf("name cannot be empty")
	}
	if c.due.set {
		due, err := normalizeDue(c.due.value)
		if err != nil {
			return service.Patch{}, err
		}
		patch.DueDate = &due
	}
	return patch, nil
}
