package order

import (
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// LineItem is a value object for one position of an order: a menu item
// reference, a quantity, and the unit price snapshotted at order-creation
// time. The snapshot is immutable, so later catalog price changes never
// affect an existing order (price integrity).
type LineItem struct {
	menuItemID kernel.UUID
	quantity   int
	unitPrice  kernel.Money
}

// NewLineItem creates a validated line item. Quantity must be at least 1;
// the unit price is taken as the immutable snapshot.
func NewLineItem(menuItemID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}

	return LineItem{
		menuItemID: menuItemID,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

// MenuItemID returns the referenced menu item.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price snapshot captured at order creation.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Total returns quantity × unit price snapshot.
func (li LineItem) Total() kernel.Money {
	return li.unitPrice.MulInt(li.quantity)
}
