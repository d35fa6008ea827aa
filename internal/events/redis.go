package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the Redis pub/sub channel shared by every process.
const Channel = "mindcare:events"

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// RedisBridge mirrors a Bus across processes through Redis pub/sub.
type RedisBridge struct {
	client *redis.Client
	bus    *Bus
	log    *zap.Logger
	origin string
	start  sync.Once

	// seams for the subscriber loop
	receiveFn func(ctx context.Context, subscribed func()) error
	after     func(time.Duration) <-chan time.Time
}

// NewRedisBridge attaches the bridge to bus: every local Publish is also
// sent to Redis from now on. Call Run to receive remote events.
func NewRedisBridge(client *redis.Client, bus *Bus, log *zap.Logger) *RedisBridge {
	rb := &RedisBridge{
		client: client,
		bus:    bus,
		log:    log.Named("events"),
		origin: uuid.NewString(),
		after:  time.After,
	}
	rb.receiveFn = rb.receive
	bus.setRemote(rb.publish)
	return rb
}

// Origin is this process's id on the channel.
func (rb *RedisBridge) Origin() string {
	return rb.origin
}

func (rb *RedisBridge) publish(ctx context.Context, event Event) {
	event.Origin = rb.origin
	data, err := json.Marshal(event)
	if err != nil {
		rb.log.Error("marshal event", zap.Error(err))
		return
	}
	if err := rb.client.Publish(ctx, Channel, data).Err(); err != nil {
		rb.log.Warn("publish event to redis", zap.String("type", event.Type), zap.Error(err))
	}
}

// Run starts the single subscriber loop for this process. It returns
// immediately; the loop stops when ctx is cancelled.
func (rb *RedisBridge) Run(ctx context.Context) {
	rb.start.Do(func() {
		go rb.loop(ctx)
	})
}

func (rb *RedisBridge) loop(ctx context.Context) {
	backoff := minBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		err := rb.receiveFn(ctx, func() { backoff = minBackoff })
		if ctx.Err() != nil {
			return
		}
		rb.log.Warn("redis subscriber dropped", zap.Error(err), zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-rb.after(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

// receive subscribes and delivers messages until the connection fails.
// subscribed runs once Redis confirms the subscription.
func (rb *RedisBridge) receive(ctx context.Context, subscribed func()) error {
	pubsub := rb.client.Subscribe(ctx, Channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	subscribed()
	rb.log.Info("redis subscriber started", zap.String("channel", Channel))

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		rb.handle(msg.Payload)
	}
}

func (rb *RedisBridge) handle(payload string) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		rb.log.Warn("unmarshal remote event", zap.Error(err))
		return
	}
	if event.Origin == rb.origin {
		return
	}
	rb.bus.deliver(event)
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
