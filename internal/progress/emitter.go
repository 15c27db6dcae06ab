// Package progress delivers backup and restore progress notifications to
// subscribers such as a CLI progress line.
package progress

import (
	"sync"

	"brightrec/internal/domain"
)

// Emitter fans progress events out to subscribers. Delivery is synchronous
// and in subscription order.
type Emitter struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(domain.ProgressEvent)
	order  []int
}

// NewEmitter returns an Emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[int]func(domain.ProgressEvent))}
}

// Subscribe registers fn and returns a function that unregisters it.
func (e *Emitter) Subscribe(fn func(domain.ProgressEvent)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.order = append(e.order, id)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to every subscriber.
func (e *Emitter) Emit(ev domain.ProgressEvent) {
	e.mu.Lock()
	fns := make([]func(domain.ProgressEvent), 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.subs[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Compile-time assertion that Emitter implements domain.ProgressSink.
var _ domain.ProgressSink = (*Emitter)(nil)

// Counter tallies progress per signal.
type Counter struct {
	mu        sync.Mutex
	succeeded map[domain.Signal]int
	failed    map[domain.Signal]int
	total     int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{
		succeeded: make(map[domain.Signal]int),
		failed:    make(map[domain.Signal]int),
	}
}

// Observe records ev; pass it to Emitter.Subscribe.
func (c *Counter) Observe(ev domain.ProgressEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case ev.Signal == domain.RestoreTotal:
		c.total = ev.Value
	case ev.Value > 0:
		c.succeeded[ev.Signal]++
	default:
		c.failed[ev.Signal]++
	}
}

// Counts returns successes and failures seen for sig.
func (c *Counter) Counts(sig domain.Signal) (succeeded, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.succeeded[sig], c.failed[sig]
}

// Total returns the last RestoreTotal value.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
