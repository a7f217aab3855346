// events/bus.go
package events

import (
	"sync"
)

// Handler receives the event payload for one topic.
type Handler func(data interface{})

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	topic string
	id    int64
}

type entry struct {
	id int64
	fn Handler
}

// Bus is an ordered topic publish/subscribe hub. Handlers on a topic are
// invoked in subscription order.
type Bus struct {
	mutex  sync.RWMutex
	nextID int64
	topics map[string][]entry
}

func NewBus() *Bus {
	return &Bus{
		topics: make(map[string][]entry),
	}
}

func (b *Bus) Subscribe(topic string, fn Handler) Subscription {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.nextID++
	b.topics[topic] = append(b.topics[topic], entry{id: b.nextID, fn: fn})
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler behind sub. Returns false if it was
// already removed.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	entries := b.topics[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			b.topics[sub.topic] = append(entries[:i:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// Emit delivers data to every subscriber of topic, in subscription order.
// Handlers run on the caller's goroutine.
func (b *Bus) Emit(topic string, data interface{}) {
	b.mutex.RLock()
	entries := make([]entry, len(b.topics[topic]))
	copy(entries, b.topics[topic])
	b.mutex.RUnlock()

	for _, e := range entries {
		e.fn(data)
	}
}
