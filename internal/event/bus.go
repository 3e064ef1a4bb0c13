// Package event provides a synchronous notification bus so frontends
// and scripts can observe editor changes without polling. Delivery is
// in-line with the mutation; the bus never spawns goroutines.
package event

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Topic names an event stream.
type Topic string

// Topics published by the editor.
const (
	TopicShapeAdded       Topic = "shape.added"
	TopicShapeRemoved     Topic = "shape.removed"
	TopicShapeModified    Topic = "shape.modified"
	TopicSelectionChanged Topic = "selection.changed"
	TopicHistoryRecorded  Topic = "history.recorded"
	TopicHistoryRestored  Topic = "history.restored"
	TopicDocumentReset    Topic = "document.reset"

	// TopicAll matches every topic.
	TopicAll Topic = "*"
)

// Handler receives published events.
type Handler func(topic Topic, payload any)

// Stats counts bus activity.
type Stats struct {
	Published  uint64
	Delivered  uint64
	Subscribed int
}

// Bus is a synchronous publish/subscribe hub.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]Handler)}
}

// Subscribe registers a handler for one topic (or TopicAll) and
// returns an unsubscribe function.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs[topic], id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every matching handler before
// returning. Handlers run in subscription order.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	handlers := collect(b.subs[topic], b.subs[TopicAll])
	b.mu.RUnlock()

	b.published.Add(1)
	b.delivered.Add(uint64(len(handlers)))

	for _, h := range handlers {
		h(topic, payload)
	}
}

// Stats returns delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, m := range b.subs {
		n += len(m)
	}
	return Stats{Published: b.published.Load(), Delivered: b.delivered.Load(), Subscribed: n}
}

// collect merges handler maps into a deterministic slice ordered by
// subscription id.
func collect(maps ...map[int]Handler) []Handler {
	type entry struct {
		id int
		h  Handler
	}
	var entries []entry
	for _, m := range maps {
		for id, h := range m {
			entries = append(entries, entry{id, h})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	out := make([]Handler, len(entries))
	for i, e := range entries {
		out[i] = e.h
	}
	return out
}
