package event

import (
	"sync"
)

// Handler receives published events.
type Handler func(Event)

// Emitter is a synchronous observer registry. Handlers run in subscription
// order on the publishing goroutine, so notification ordering matches state
// transition ordering.
type Emitter struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[Kind][]subscription
	all      []subscription
}

type subscription struct {
	id      int
	handler Handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		handlers: make(map[Kind][]subscription),
	}
}

// Subscribe registers a handler for one event kind and returns an
// unsubscribe function.
func (e *Emitter) Subscribe(kind Kind, h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers[kind] = append(e.handlers[kind], subscription{id: id, handler: h})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		subs := e.handlers[kind]
		for i, s := range subs {
			if s.id == id {
				e.handlers[kind] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// SubscribeAll registers a handler for every event kind.
func (e *Emitter) SubscribeAll(h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.all = append(e.all, subscription{id: id, handler: h})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.all {
			if s.id == id {
				e.all = append(e.all[:i], e.all[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every matching handler.
func (e *Emitter) Publish(ev Event) {
	e.mu.RLock()
	subs := make([]subscription, 0, len(e.handlers[ev.Kind()])+len(e.all))
	subs = append(subs, e.handlers[ev.Kind()]...)
	subs = append(subs, e.all...)
	e.mu.RUnlock()

	for _, s := range subs {
		s.handler(ev)
	}
}
