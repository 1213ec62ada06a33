package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/paginate"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskdeck` (no args) and `taskdeck list`.
type ListCmd struct {
	page int
	all  bool
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

// SetAll sets --all (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskdeck list [--page <n>] [--all]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.page, c.all = 1, false
	fs.IntVarP(&c.page, "page", "p", 1, "page to show")
	fs.BoolVarP(&c.all, "all", "a", false, "show every task on one page")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	if err := env.Session.Tasks.FetchTasks(ctx); err != nil {
		return reportFetchError(errOut, err)
	}
	tasks := env.Session.Tasks.Tasks()

	if len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	size := env.Config.Settings.UI.PageSize
	if c.all {
		size = len(tasks)
	}
	pages := paginate.Pages(len(tasks), size)
	if c.page > pages {
		fmt.Fprintf(errOut, "error: page out of range: %d (of %d)\n", c.page, pages)
		return exitcode.UserError
	}

	start, end := paginate.Window(len(tasks), c.page, size)
	for i := start; i < end; i++ {
		output.FormatTask(out, i+1, tasks[i])
	}
	if pages > 1 && !env.Config.Quiet {
		output.FormatPageFooter(out, c.page, pages, len(tasks))
	}
	return exitcode.Success
}
