package notify

import "sync"

// Relay forwards signals to a target that can be swapped at runtime,
// e.g. from a line printer to an interactive view.
type Relay struct {
	mu     sync.RWMutex
	target Notifier
}

// NewRelay creates a Relay forwarding to target (nil discards).
func NewRelay(target Notifier) *Relay {
	if target == nil {
		target = Discard
	}
	return &Relay{target: target}
}

// Set replaces the target and returns the previous one.
func (r *Relay) Set(target Notifier) Notifier {
	if target == nil {
		target = Discard
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.target
	r.target = target
	return previous
}

// Notify implements Notifier.
func (r *Relay) Notify(s Signal) {
	r.mu.RLock()
	target := r.target
	r.mu.RUnlock()
	target.Notify(s)
}
