// Package menu provides the MenuItem entity, the read-only catalog side of
// order placement. Items are created and priced by the administration surface;
// the ordering core only resolves them and snapshots their current price.
package menu

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrMenuItemIsNotConstructed is returned when a MenuItem was not created
// through NewMenuItem or RestoreMenuItem.
var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem or RestoreMenuItem")

// MenuItem is one purchasable catalog entry belonging to a tenant and a
// category. From the order aggregate's perspective it is read-only: the
// ordering flow consults name, price, and availability, never mutates them.
type MenuItem struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	category    string
	name        string
	description string
	price       kernel.Money
	available   bool

	isConstructed bool
}

// NewMenuItem creates an available menu item. Name and category are required;
// the price is the current unit price customers would be charged.
func NewMenuItem(
	id kernel.UUID,
	tenantID kernel.UUID,
	category string,
	name string,
	description string,
	price kernel.Money,
) (*MenuItem, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if category == "" {
		return nil, errs.NewValueIsRequiredError("category")
	}

	return &MenuItem{
		id:            id,
		tenantID:      tenantID,
		category:      category,
		name:          name,
		description:   description,
		price:         price,
		available:     true,
		isConstructed: true,
	}, nil
}

// RestoreMenuItem reconstructs a menu item from persistence, including its
// availability flag.
func RestoreMenuItem(
	id kernel.UUID,
	tenantID kernel.UUID,
	category string,
	name string,
	description string,
	price kernel.Money,
	available bool,
) (*MenuItem, error) {
	item, err := NewMenuItem(id, tenantID, category, name, description, price)
	if err != nil {
		return nil, err
	}
	item.available = available
	return item, nil
}

// Validate ensures the MenuItem was created through a constructor.
func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// TenantID returns the owning tenant.
func (m *MenuItem) TenantID() kernel.UUID {
	return m.tenantID
}

// Category returns the category name the item is grouped under.
func (m *MenuItem) Category() string {
	return m.category
}

// Name returns the display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Description returns the display description, possibly empty.
func (m *MenuItem) Description() string {
	return m.description
}

// Price returns the current unit price.
func (m *MenuItem) Price() kernel.Money {
	return m.price
}

// IsAvailable reports whether the item may appear on new orders.
func (m *MenuItem) IsAvailable() bool {
	return m.available
}
