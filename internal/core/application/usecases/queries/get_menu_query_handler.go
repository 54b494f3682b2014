package queries

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMenuQueryHandler reads the tenant's available menu items directly from
// the database, bypassing the aggregate layer. Results are ordered by
// category then name so gateways can render the menu without re-sorting.
type GetMenuQueryHandler struct {
	db *gorm.DB
}

// NewGetMenuQueryHandler creates a handler for menu queries.
func NewGetMenuQueryHandler(db *gorm.DB) GetMenuQueryHandler {
	return GetMenuQueryHandler{db: db}
}

// Handle executes the query and returns the available items of the caller's
// tenant.
func (h GetMenuQueryHandler) Handle(
	ctx context.Context,
	query GetMenuQuery,
) ([]GetMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]GetMenuQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			name,
			description,
			price
		FROM menu_items
		WHERE tenant_id = ? AND available
		ORDER BY category, name
	`, query.Caller().TenantID().String()).Rows()
	if err != nil {
		return nil, errs.NewStorageUnavailableError("query menu items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item GetMenuQueryResponse
		var id uuid.UUID
		var price string

		err = rows.Scan(
			&id,
			&item.Category,
			&item.Name,
			&item.Description,
			&price,
		)
		if err != nil {
			return nil, errs.NewStorageUnavailableError("scan menu item", err)
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID

		money, moneyErr := kernel.NewMoneyFromString(price)
		if moneyErr != nil {
			return nil, moneyErr
		}
		item.Price = money

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError("iterate menu items", err)
	}

	return items, nil
}
