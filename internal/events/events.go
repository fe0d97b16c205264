package events

import (
	"sync"
	"time"
)

// Kind classifies an event for the presentation layer.
type Kind string

const (
	KindInfo       Kind = "info"
	KindSuccess    Kind = "success"
	KindWarning    Kind = "warning"
	KindError      Kind = "error"
	KindConnection Kind = "connection"
)

// Event is a single timestamped message emitted by the server core.
// Observers receive copies; an Event is never mutated after publication.
type Event struct {
	Time    time.Time
	Kind    Kind
	Message string
}

// Hub fans events out to subscribers. Broadcast never blocks: a subscriber
// whose channel buffer is full misses the event rather than stalling the
// server's accept or connection paths.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[int]chan Event{}}
}

// Subscribe registers a new observer. The returned cancel function closes the
// channel and removes the subscription; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 64)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			close(c)
			delete(h.subs, id)
		}
	}
	return ch, cancel
}

// Publish stamps the event with the current time and broadcasts it.
func (h *Hub) Publish(kind Kind, message string) {
	h.broadcast(Event{Time: time.Now(), Kind: kind, Message: message})
}

func (h *Hub) broadcast(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
