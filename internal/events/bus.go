// Package events carries change notifications between services and any
// number of passive observers (dashboards, the /ws/events stream). Payloads
// only identify what changed; observers re-read the store.
package events

import (
	"context"
	"sync"
	"time"
)

// Event types.
const (
	TherapistApproved = "therapist-approved"
	TherapistRejected = "therapist-rejected"
	DataUpdated       = "data-updated"
	AnalyticsUpdated  = "analytics-updated"
)

// Event is a change notification.
type Event struct {
	Type        string    `json:"type"`
	TherapistID string    `json:"therapistId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	// Origin identifies the publishing process on the Redis bridge.
	Origin string `json:"origin,omitempty"`
}

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Subscription receives events on C until Close is called.
type Subscription struct {
	C    <-chan Event
	ch   chan Event
	bus  *Bus
	once sync.Once
}

// Close detaches the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() { s.bus.remove(s) })
}

// Bus fans events out to local subscribers. Delivery is best-effort: a
// subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	remote func(ctx context.Context, event Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new observer with the given channel buffer.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	sub := &Subscription{C: ch, ch: ch, bus: b}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

// Publish delivers event to local subscribers and, when a remote sink is
// attached, forwards it there too.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	b.deliver(event)

	b.mu.RLock()
	remote := b.remote
	b.mu.RUnlock()
	if remote != nil {
		remote(ctx, event)
	}
}

// deliver fans out locally only.
func (b *Bus) deliver(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			// Buffer full; observer will catch up on its next re-read.
		}
	}
}

// Subscribers returns the number of attached subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) setRemote(fn func(ctx context.Context, event Event)) {
	b.mu.Lock()
	b.remote = fn
	b.mu.Unlock()
}
