// Package logring keeps the capped, append-only event history the log views
// render. The server core never depends on it; it is one consumer of the
// event stream among possibly several.
package logring

import (
	"sync"

	"github.com/wenzhi0209/webrtc-lan-server/internal/events"
)

// DefaultCapacity matches the legacy log view, which kept the 100
// most-recent entries.
const DefaultCapacity = 100

// Ring is a bounded, append-only view of the event stream. When full, the
// oldest entry is evicted first.
type Ring struct {
	mu      sync.Mutex
	entries []events.Event
	cap     int
}

// New creates a ring holding at most capacity entries. A capacity of zero or
// less falls back to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{cap: capacity}
}

// Append adds an entry, evicting the oldest when the ring is full.
func (r *Ring) Append(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == r.cap {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:r.cap-1]
	}
	r.entries = append(r.entries, e)
}

// Snapshot returns a copy of the current entries, oldest first.
func (r *Ring) Snapshot() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries currently held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear drops all entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}

// Follow consumes events from ch into the ring until ch closes. It is meant
// to run in its own goroutine alongside a Hub subscription.
func (r *Ring) Follow(ch <-chan events.Event) {
	for e := range ch {
		r.Append(e)
	}
}
