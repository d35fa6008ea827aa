package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestBus_PublishFansOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)
	defer a.Close()
	defer b.Close()

	bus.Publish(context.Background(), Event{Type: TherapistApproved, TherapistID: "t-1"})

	for _, sub := range []*Subscription{a, b} {
		select {
		case ev := <-sub.C:
			if ev.Type != TherapistApproved || ev.TherapistID != "t-1" {
				t.Errorf("unexpected event %+v", ev)
			}
			if ev.Timestamp.IsZero() {
				t.Error("timestamp should be stamped on publish")
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBus_FullBufferDrops(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	defer sub.Close()

	bus.Publish(context.Background(), Event{Type: DataUpdated})
	bus.Publish(context.Background(), Event{Type: AnalyticsUpdated})

	if ev := <-sub.C; ev.Type != DataUpdated {
		t.Errorf("expected first event kept, got %s", ev.Type)
	}
	select {
	case ev := <-sub.C:
		t.Errorf("expected second event dropped, got %s", ev.Type)
	default:
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	sub.Close()
	sub.Close()

	if bus.Subscribers() != 0 {
		t.Errorf("expected no subscribers, got %d", bus.Subscribers())
	}
	if _, ok := <-sub.C; ok {
		t.Error("channel should be closed")
	}
	// Publishing after close must not panic.
	bus.Publish(context.Background(), Event{Type: DataUpdated})
}

func TestBus_RemoteSink(t *testing.T) {
	bus := NewBus()
	var forwarded []Event
	bus.setRemote(func(_ context.Context, ev Event) { forwarded = append(forwarded, ev) })

	bus.Publish(context.Background(), Event{Type: DataUpdated, UserID: "u-1"})
	if len(forwarded) != 1 || forwarded[0].UserID != "u-1" {
		t.Fatalf("expected event forwarded to remote sink, got %+v", forwarded)
	}
}

func TestRedisBridge_HandleSkipsOwnOrigin(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(4)
	defer sub.Close()

	rb := &RedisBridge{bus: bus, log: zap.NewNop(), origin: "self"}

	own, _ := json.Marshal(Event{Type: DataUpdated, Origin: "self"})
	rb.handle(string(own))
	other, _ := json.Marshal(Event{Type: TherapistRejected, Origin: "peer", TherapistID: "t-9"})
	rb.handle(string(other))
	rb.handle("{garbage")

	select {
	case ev := <-sub.C:
		if ev.Type != TherapistRejected || ev.TherapistID != "t-9" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("remote event not delivered")
	}
	select {
	case ev := <-sub.C:
		t.Errorf("own-origin event must not be re-delivered, got %+v", ev)
	default:
	}
}

func TestNextBackoff(t *testing.T) {
	d := minBackoff
	for i := 0; i < 10; i++ {
		d = nextBackoff(d)
	}
	if d != maxBackoff {
		t.Errorf("expected backoff capped at %v, got %v", maxBackoff, d)
	}
	if got := nextBackoff(time.Second); got != 2*time.Second {
		t.Errorf("expected doubling, got %v", got)
	}
}

func TestRedisBridge_BackoffResetsOnSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dropped := errors.New("connection refused")
	calls := 0
	rb := &RedisBridge{log: zap.NewNop()}
	rb.receiveFn = func(_ context.Context, subscribed func()) error {
		calls++
		switch calls {
		case 3:
			// subscribed, then dropped before any message arrived
			subscribed()
		case 4:
			cancel()
		}
		return dropped
	}
	var waits []time.Duration
	rb.after = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	rb.loop(ctx)

	want := []time.Duration{minBackoff, 2 * minBackoff, minBackoff}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait %d = %v, want %v", i, waits[i], want[i])
		}
	}
}
