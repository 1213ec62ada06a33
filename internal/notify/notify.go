// Package notify maps store outcomes to user-facing messages.
package notify

import "sync"

// Category identifies the operation a signal reports on.
type Category string

const (
	Created Category = "created"
	Updated Category = "updated"
	Deleted Category = "deleted"
	Login   Category = "login"
)

// Signal is raised once per completed store operation.
type Signal struct {
	Category Category
	Success  bool
}

// Text returns the display text for s.
func (s Signal) Text() string {
	return Text(s.Category, s.Success)
}

type messages struct {
	success string
	failure string
}

var table = map[Category]messages{
	Created: {success: "Successfully created!", failure: "Failed to create."},
	Updated: {success: "Successfully updated!", failure: "Failed to update."},
	Deleted: {success: "Successfully deleted!", failure: "Failed to delete."},
	Login:   {success: "Login successful!", failure: "Something went wrong!"},
}

// Text looks up the message for a category and outcome.
// Unknown categories return "".
func Text(category Category, success bool) string {
	m, ok := table[category]
	if !ok {
		return ""
	}
	if success {
		return m.success
	}
	return m.failure
}

// Notifier consumes signals. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(Signal)
}

// Func adapts a function to Notifier.
type Func func(Signal)

// Notify implements Notifier.
func (f Func) Notify(s Signal) { f(s) }

// Discard drops every signal.
var Discard Notifier = Func(func(Signal) {})

// Recorder keeps every signal it receives, in order.
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

// Notify implements Notifier.
func (r *Recorder) Notify(s Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, s)
}

// Signals returns a copy of the recorded signals.
func (r *Recorder) Signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Last returns the most recent signal, if any.
func (r *Recorder) Last() (Signal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.signals) == 0 {
		return Signal{}, false
	}
	return r.signals[len(r.signals)-1], true
}
