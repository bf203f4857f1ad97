// Package eventbus carries session lifecycle events from the parking engine
// to asynchronous consumers such as the metrics collector.
package eventbus

import (
	"sync"

	"github.com/openlot/parkd/core/events"
)

// defaultBuffer is the subscriber channel capacity used when Subscribe is
// called with a non-positive size. Sized for bursts of simultaneous entries
// and exits.
const defaultBuffer = 32

// Bus fans session events out to its subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event instead of stalling
// the engine's notification path.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan events.SessionEvent
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan events.SessionEvent)}
}

// Subscription is one consumer's handle on the bus. Receive from C and call
// Cancel when done.
type Subscription struct {
	C <-chan events.SessionEvent

	id  int
	bus *Bus
}

// Subscribe registers a consumer. A non-positive buffer selects the default
// capacity. Subscribing to a closed bus yields an already-closed channel.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	ch := make(chan events.SessionEvent, buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return &Subscription{C: ch, id: -1, bus: b}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	return &Subscription{C: ch, id: id, bus: b}
}

// Cancel removes the subscription and closes its channel. Calling it after
// the bus closed, or twice, is a no-op.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	ch, ok := s.bus.subs[s.id]
	if !ok {
		return
	}
	delete(s.bus.subs, s.id)
	close(ch)
}

// Publish delivers the event to every live subscriber without blocking.
func (b *Bus) Publish(ev events.SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
