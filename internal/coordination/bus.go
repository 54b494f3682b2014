// Package coordination distributes committed state changes to the role
// surfaces. Command handlers publish onto the in-process bus after commit;
// gateway streams subscribe to refresh their boards. An optional mirror
// republishes every event to RabbitMQ for off-process consumers.
//
// Delivery is advisory. Boards reconcile against the database on their next
// poll, so the bus prefers dropping the oldest buffered event over blocking a
// command handler.
package coordination

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tableside/internal/core/ports"
)

const defaultBufferSize = 64

// Bus is the in-process coordination bus. Implements ports.EventPublisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int

	bufferSize int
	mirror     ports.EventPublisher
	logger     *slog.Logger
}

type subscription struct {
	ch     chan ports.Event
	tenant string
}

// Option configures a Bus.
type Option func(*Bus)

// WithBufferSize overrides the per-subscriber buffer size.
func WithBufferSize(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.bufferSize = n
		}
	}
}

// WithMirror republishes every event to the given publisher, typically the
// RabbitMQ publisher. Mirror delivery failures are the mirror's concern.
func WithMirror(mirror ports.EventPublisher) Option {
	return func(b *Bus) {
		b.mirror = mirror
	}
}

// NewBus creates a coordination bus.
func NewBus(logger *slog.Logger, opts ...Option) *Bus {
	b := &Bus{
		subs:       make(map[int]*subscription),
		bufferSize: defaultBufferSize,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a subscriber for one tenant's events. An empty tenant
// subscribes to all tenants. The returned cancel function closes the channel;
// after cancel the channel must be drained, not reused.
func (b *Bus) Subscribe(tenantID string) (<-chan ports.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	sub := &subscription{
		ch:     make(chan ports.Event, b.bufferSize),
		tenant: tenantID,
	}
	b.subs[id] = sub

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Publish fans the event out to matching subscribers and the mirror. Never
// blocks: when a subscriber's buffer is full the oldest buffered event is
// dropped to make room.
func (b *Bus) Publish(ctx context.Context, event ports.Event) {
	if b.mirror != nil {
		b.mirror.Publish(ctx, event)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.tenant != "" && sub.tenant != event.TenantID {
			continue
		}
		b.deliver(sub, event)
	}
}

// Nudge broadcasts a refresh tick to every subscriber regardless of tenant.
// The tick never reaches the mirror; it is an in-process polling hint only.
func (b *Bus) Nudge() {
	event := ports.Event{Kind: ports.EventRefreshTick, OccurredAt: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		b.deliver(sub, event)
	}
}

// deliver pushes one event onto a subscriber's buffer, dropping the oldest
// buffered event when full. Callers must hold b.mu.
func (b *Bus) deliver(sub *subscription, event ports.Event) {
	for {
		select {
		case sub.ch <- event:
		default:
			select {
			case dropped := <-sub.ch:
				b.logger.Warn("coordination bus dropped event",
					"kind", dropped.Kind,
					"tenant_id", dropped.TenantID)
			default:
			}
			continue
		}
		break
	}
}

// SubscriberCount reports the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
