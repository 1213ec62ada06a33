package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Toaster renders signals as one-line toasts.
// Successes go to out unless quiet; failures always go to errOut.
type Toaster struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	quiet   bool
	success lipgloss.Style
	failure lipgloss.Style
}

// NewToaster creates a Toaster. Colors are only emitted when the writer
// is a terminal that supports them.
func NewToaster(out, errOut io.Writer, quiet bool) *Toaster {
	return &Toaster{
		out:     out,
		errOut:  errOut,
		quiet:   quiet,
		success: lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true),
		failure: lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
	}
}

// Notify implements Notifier.
func (t *Toaster) Notify(s Signal) {
	text := s.Text()
	if text == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if s.Success {
		if t.quiet {
			return
		}
		fmt.Fprintln(t.out, t.success.Render(text))
		return
	}
	fmt.Fprintln(t.errOut, t.failure.Render(text))
}
