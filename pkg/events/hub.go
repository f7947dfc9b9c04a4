// Package events decouples node-interaction dispatch from the parsing,
// model, and traversal logic. The rendered diagram carries one click hook
// per visible node; whichever collaborator displays the diagram (HTTP
// client, terminal UI) reports interactions back as explicit events through
// a Hub instead of a process-global callback.
package events

import "sync"

// Click is one node interaction in a viewing session.
type Click struct {
	Session string // viewing session id
	Node    string // clicked node id
}

// Handler receives click events. Handlers run synchronously on the
// emitting goroutine, in subscription order.
type Handler func(Click)

// Hub fans click events out to registered handlers.
// The zero value is ready to use. Hub is safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewHub creates an empty hub.
func NewHub() *Hub { return &Hub{} }

// Subscribe registers a handler and returns a function that removes it.
func (h *Hub) Subscribe(fn Handler) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handlers == nil {
		h.handlers = make(map[int]Handler)
	}
	id := h.nextID
	h.nextID++
	h.handlers[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers, id)
	}
}

// Emit delivers a click to every registered handler, in subscription order.
func (h *Hub) Emit(c Click) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.handlers))
	for i := 0; i < h.nextID; i++ {
		if fn, ok := h.handlers[i]; ok {
			handlers = append(handlers, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}
