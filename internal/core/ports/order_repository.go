package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All reads are tenant-filtered by the caller before use; implementations
// surface missing rows as ObjectNotFoundError and driver failures as
// StorageUnavailableError.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items as a
	// single atomic unit.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByStatuses retrieves a tenant's orders in any of the given
	// statuses, oldest first. Used by the kitchen, waiter, and cashier
	// boards.
	GetAllByStatuses(ctx context.Context, tenantID kernel.UUID, statuses []order.Status) ([]*order.Order, error)

	// GetLatestForTable retrieves the most recently created order for a
	// table, or ObjectNotFoundError if the table never had one. Used by the
	// reconciliation sweep.
	GetLatestForTable(ctx context.Context, tableID kernel.UUID) (*order.Order, error)
}
