// Package orderrepo persists order aggregates. An order maps to one row in
// orders plus one row per line in order_items; unit prices stored on the
// lines are the snapshots taken at placement, never the live catalog price.
package orderrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;index"`
	TableID      uuid.UUID `gorm:"type:uuid;index"`
	OccupantName string
	Status       string         `gorm:"type:varchar(16);index"`
	Total        string         `gorm:"type:decimal(8,2)"`
	CreatedAt    time.Time      `gorm:"index"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line with its price snapshot.
type OrderItemDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Quantity   int
	UnitPrice  string `gorm:"type:decimal(8,2)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := o.Lines()
	items := make([]OrderItemDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			MenuItemID: line.MenuItemID().Bytes(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().String(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		TenantID:     o.TenantID().Bytes(),
		TableID:      o.TableID().Bytes(),
		OccupantName: o.OccupantName(),
		Status:       o.Status().String(),
		Total:        o.Total().String(),
		CreatedAt:    o.CreatedAt(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(item.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, priceErr := kernel.NewMoneyFromString(item.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := order.NewLineItem(menuItemID, item.Quantity, unitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, tenantID, tableID, dto.OccupantName, lines, status, dto.CreatedAt)
}
