package queries

import (
	"context"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads station boards from the database. Headers and
// lines come from two queries stitched together in memory, keeping both
// statements index-friendly.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order board queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are returned oldest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, s.String())
	}

	orders, orderIDs, err := h.readHeaders(ctx, query.Caller().TenantID(), statuses)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachLines(ctx, orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListOrdersQueryHandler) readHeaders(
	ctx context.Context,
	tenantID kernel.UUID,
	statuses []string,
) ([]ListOrdersQueryResponse, []string, error) {
	orders := make([]ListOrdersQueryResponse, 0)
	orderIDs := make([]string, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_id,
			occupant_name,
			status,
			total,
			created_at
		FROM orders
		WHERE tenant_id = ? AND status IN ?
		ORDER BY created_at, id
	`, tenantID.String(), statuses).Rows()
	if err != nil {
		return nil, nil, errs.NewStorageUnavailableError("query order boards", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id, tableID uuid.UUID
		var total string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&tableID,
			&resp.OccupantName,
			&resp.Status,
			&total,
			&createdAt,
		)
		if err != nil {
			return nil, nil, errs.NewStorageUnavailableError("scan order header", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		resp.ID = orderID

		respTableID, idErr := kernel.UUIDFromBytes(tableID[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		resp.TableID = respTableID

		money, moneyErr := kernel.NewMoneyFromString(total)
		if moneyErr != nil {
			return nil, nil, moneyErr
		}
		resp.Total = money
		resp.CreatedAt = createdAt

		orders = append(orders, resp)
		orderIDs = append(orderIDs, resp.ID.String())
	}

	if err = rows.Err(); err != nil {
		return nil, nil, errs.NewStorageUnavailableError("iterate order headers", err)
	}

	return orders, orderIDs, nil
}

func (h ListOrdersQueryHandler) attachLines(
	ctx context.Context,
	orders []ListOrdersQueryResponse,
	orderIDs []string,
) error {
	byOrder := make(map[string]int, len(orders))
	for i, o := range orders {
		byOrder[o.ID.String()] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.order_id,
			oi.menu_item_id,
			mi.name,
			oi.quantity
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id IN ?
		ORDER BY oi.id
	`, orderIDs).Rows()
	if err != nil {
		return errs.NewStorageUnavailableError("query order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, menuItemID uuid.UUID
		var line ListOrdersQueryLine

		err = rows.Scan(
			&orderID,
			&menuItemID,
			&line.Name,
			&line.Quantity,
		)
		if err != nil {
			return errs.NewStorageUnavailableError("scan order line", err)
		}

		lineMenuItemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return idErr
		}
		line.MenuItemID = lineMenuItemID

		idx, ok := byOrder[orderID.String()]
		if !ok {
			continue
		}
		orders[idx].Lines = append(orders[idx].Lines, line)
	}

	if err = rows.Err(); err != nil {
		return errs.NewStorageUnavailableError("iterate order lines", err)
	}
	return nil
}
