package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
)

// MenuItemRepository defines the persistence contract for the menu catalog.
// The ordering core only ever reads from it; writes happen on behalf of the
// administration surface.
type MenuItemRepository interface {
	// Add persists a new menu item.
	Add(ctx context.Context, item *menu.MenuItem) error

	// Get retrieves a menu item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error)

	// GetAllAvailable retrieves a tenant's currently available items,
	// ordered by category then name for stable menu rendering.
	GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*menu.MenuItem, error)
}
