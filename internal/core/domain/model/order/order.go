package order

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrLinesAreRequired is returned when an order is created without any line items.
	ErrLinesAreRequired = errors.New("order requires at least one line item")
)

// Order is the aggregate root for a restaurant order. It exclusively owns its
// line items and enforces the lifecycle state machine from placement through
// payment.
//
// Invariants maintained by the aggregate:
//   - Belongs to exactly one tenant and one table, both fixed at creation
//   - At least one line item at all times
//   - total == Σ(quantity × unit price snapshot) after every line mutation
//   - Unit price snapshots never change after creation
//   - Status only moves forward along the defined graph; line items are
//     frozen once the order leaves Placed
type Order struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	tableID      kernel.UUID
	occupantName string
	lines        []LineItem
	status       Status
	total        kernel.Money
	createdAt    time.Time

	isConstructed bool
}

// NewOrder creates an order in Placed status from already-resolved line items.
// The caller (PlaceOrderCommandHandler) is responsible for resolving menu
// items within the tenant and snapshotting their current prices into the
// lines; the aggregate derives the total from them.
//
// occupantName attributes the order to the guest who checked in at the table
// and may be empty for staff-entered orders.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	tableID kernel.UUID,
	occupantName string,
	lines []LineItem,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		tableID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrLinesAreRequired
	}

	o := &Order{
		id:            id,
		tenantID:      tenantID,
		tableID:       tableID,
		occupantName:  occupantName,
		lines:         append([]LineItem(nil), lines...),
		status:        Placed,
		createdAt:     now,
		isConstructed: true,
	}
	o.recomputeTotal()

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The total is re-derived
// from the stored lines rather than trusted from storage, keeping the total
// invariant authoritative in one place.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	tableID kernel.UUID,
	occupantName string,
	lines []LineItem,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		tableID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrLinesAreRequired
	}

	o := &Order{
		id:            id,
		tenantID:      tenantID,
		tableID:       tableID,
		occupantName:  occupantName,
		lines:         append([]LineItem(nil), lines...),
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}
	o.recomputeTotal()

	return o, nil
}

// Validate ensures the Order was created through a constructor.
// Returns ErrOrderIsNotConstructed for zero-value or directly-built instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// TableID returns the table the order was placed from.
func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

// OccupantName returns the guest name the order is attributed to.
func (o *Order) OccupantName() string {
	return o.occupantName
}

// Lines returns a copy of the order's line items in their original sequence.
func (o *Order) Lines() []LineItem {
	return append([]LineItem(nil), o.lines...)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the derived total amount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Advance moves the order to target if (current, target) is a legal edge for
// the acting role. Re-requesting the current status is a no-op success so that
// duplicate retries from polling clients are harmless. On failure the order is
// left unchanged and an IllegalTransitionError is returned.
func (o *Order) Advance(target Status, role kernel.Role) error {
	newStatus, err := o.status.Advance(target, role)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// SetLines replaces the order's line items. Only legal while the order is
// still Placed; afterwards the kitchen owns the order and the call fails with
// OrderLockedError. The total is re-derived from the new lines.
func (o *Order) SetLines(lines []LineItem) error {
	if o.status != Placed {
		return errs.NewOrderLockedError(o.id.String(), o.status.String())
	}
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	o.lines = append([]LineItem(nil), lines...)
	o.recomputeTotal()
	return nil
}

// recomputeTotal re-derives the total from the current lines. Called on every
// line mutation; the total is never settable independently.
func (o *Order) recomputeTotal() {
	total := kernel.ZeroMoney()
	for _, li := range o.lines {
		total = total.Add(li.Total())
	}
	o.total = total
}
