package ports

import (
	"context"
	"time"
)

// EventKind discriminates the state changes republished on the coordination bus.
type EventKind string

const (
	EventOrderPlaced          EventKind = "order.placed"
	EventOrderStatusChanged   EventKind = "order.status_changed"
	EventTableOccupancyChange EventKind = "table.occupancy_changed"

	// EventRefreshTick carries no state change. The bus broadcasts it
	// periodically so pure pollers wake within the staleness bound.
	EventRefreshTick EventKind = "bus.refresh_tick"
)

// Event is one committed state change. The coordination bus republishes these
// to read-side consumers; it is never a source of truth, only a projection of
// results the order and table aggregates have already committed.
type Event struct {
	Kind       EventKind `json:"kind"`
	TenantID   string    `json:"tenant_id"`
	OrderID    string    `json:"order_id,omitempty"`
	TableID    string    `json:"table_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Occupancy  string    `json:"occupancy,omitempty"`
	Method     string    `json:"method,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher is the write side of the coordination bus. Command handlers
// publish after their transaction commits; publishing must never fail the
// already-committed business operation, so implementations absorb delivery
// errors internally.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
