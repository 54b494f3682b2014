package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for table aggregates.
// Table-number uniqueness per tenant is enforced by a storage constraint.
type TableRepository interface {
	// Add persists a new table aggregate.
	Add(ctx context.Context, aggregate *table.Table) error

	// Update persists changes to an existing table aggregate.
	Update(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetAllOccupied retrieves every occupied table across tenants.
	// Reserved for the cross-tenant reconciliation sweep.
	GetAllOccupied(ctx context.Context) ([]*table.Table, error)
}
