package store

import (
	"sync"
	"time"
)

// Action is the kind of write a Change records.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change describes one committed write. Settings singletons report an empty ID.
type Change struct {
	Entity EntityType `json:"entity"`
	Action Action     `json:"action"`
	ID     string     `json:"id,omitempty"`
	At     time.Time  `json:"at"`
}

// hub fans changes out to subscribers. It has its own lock so that delivery
// never happens while the store lock is held.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Change)
}

func (h *hub) subscribe(fn func(Change)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]func(Change))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *hub) publish(changes []Change) {
	if len(changes) == 0 {
		return
	}
	h.mu.Lock()
	fns := make([]func(Change), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}
