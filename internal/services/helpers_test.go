package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"go.uber.org/zap"
)

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func (p *recordingPublisher) has(typ string) bool {
	for _, t := range p.types() {
		if t == typ {
			return true
		}
	}
	return false
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// lockCheckingPublisher counts events published while any of the watched
// mutexes is held.
type lockCheckingPublisher struct {
	recordingPublisher
	watched []*sync.Mutex
	held    int
}

func (p *lockCheckingPublisher) Publish(ctx context.Context, ev events.Event) {
	for _, m := range p.watched {
		if !m.TryLock() {
			p.mu.Lock()
			p.held++
			p.mu.Unlock()
			continue
		}
		m.Unlock()
	}
	p.recordingPublisher.Publish(ctx, ev)
}

type fixture struct {
	store     *storage.MemoryStore
	bus       *recordingPublisher
	clock     *fakeClock
	lifecycle *LifecycleService
	identity  *IdentityService
	bookings  *BookingService
}

func newFixture() *fixture {
	store := storage.NewMemoryStore()
	bus := &recordingPublisher{}
	clock := newFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	lc := NewLifecycleService(store, bus, log, clock.Now)
	lc.newID = sequentialIDs("svc")
	id := NewIdentityService(lc, store, bus, log, time.Hour, clock.Now)
	id.newID = sequentialIDs("user")
	bk := NewBookingService(store, lc, bus, log, clock.Now)
	bk.newID = sequentialIDs("booking")

	return &fixture{store: store, bus: bus, clock: clock, lifecycle: lc, identity: id, bookings: bk}
}
