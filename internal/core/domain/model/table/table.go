// Package table provides the Table aggregate for occupancy coordination.
// A table belongs to one tenant, carries a tenant-unique table number, and is
// either available or occupied by a named guest. Check-in is the contended
// operation: two guests scanning the same QR code must resolve to exactly one
// winner, which the command layer guarantees by serializing per table id.
package table

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrTableIsNotConstructed is returned when a Table instance was not created
	// through NewTable or RestoreTable.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or RestoreTable")
)

// Occupancy is the two-state occupancy flag of a table.
type Occupancy int

const (
	// OccupancyUnknown catches uninitialized values.
	OccupancyUnknown Occupancy = iota

	// Available means the table accepts a check-in.
	Available

	// Occupied means a guest session is active; check-ins are rejected.
	Occupied
)

func getOccupancyStrings() map[Occupancy]string {
	return map[Occupancy]string{
		OccupancyUnknown: "unknown",
		Available:        "available",
		Occupied:         "occupied",
	}
}

// OccupancyFromString parses the canonical lowercase occupancy name used on
// the wire and in storage. Returns an error for anything outside the valid set.
func OccupancyFromString(s string) (Occupancy, error) {
	switch s {
	case "available":
		return Available, nil
	case "occupied":
		return Occupied, nil
	default:
		return OccupancyUnknown, errs.NewValueIsInvalidErrorWithCause("occupancy",
			fmt.Errorf("%q is not a valid occupancy", s))
	}
}

// Validate rejects values outside {Available, Occupied}.
func (o Occupancy) Validate() error {
	if o != Available && o != Occupied {
		return errs.NewValueIsInvalidErrorWithCause("occupancy", fmt.Errorf("%d is not a valid occupancy", o))
	}
	return nil
}

// String returns the canonical lowercase name used on the wire and in storage.
func (o Occupancy) String() string {
	if s, ok := getOccupancyStrings()[o]; ok {
		return s
	}
	return "unknown"
}

// Table is the aggregate root for one physical restaurant table.
//
// Invariants:
//   - Belongs to exactly one tenant, fixed at creation
//   - Table number is positive (uniqueness per tenant is enforced by storage)
//   - Occupant name is recorded iff the table is occupied
//   - A table never accepts a second check-in while occupied
type Table struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	number       int
	capacity     int
	occupancy    Occupancy
	occupantName string

	isConstructed bool
}

// NewTable creates an available table. number must be positive and unique
// within the tenant; capacity is the seat count and must be positive.
func NewTable(id kernel.UUID, tenantID kernel.UUID, number int, capacity int) (*Table, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
	); err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("table number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}

	return &Table{
		id:            id,
		tenantID:      tenantID,
		number:        number,
		capacity:      capacity,
		occupancy:     Available,
		isConstructed: true,
	}, nil
}

// RestoreTable reconstructs a table from persistence.
func RestoreTable(
	id kernel.UUID,
	tenantID kernel.UUID,
	number int,
	capacity int,
	occupancy Occupancy,
	occupantName string,
) (*Table, error) {
	t, err := NewTable(id, tenantID, number, capacity)
	if err != nil {
		return nil, err
	}
	if err = occupancy.Validate(); err != nil {
		return nil, err
	}

	t.occupancy = occupancy
	if occupancy == Occupied {
		t.occupantName = occupantName
	}
	return t, nil
}

// Validate ensures the Table was created through a constructor.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// IsEqual compares two tables by identity.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// TenantID returns the owning tenant.
func (t *Table) TenantID() kernel.UUID {
	return t.tenantID
}

// Number returns the tenant-unique table number.
func (t *Table) Number() int {
	return t.number
}

// Capacity returns the seat count.
func (t *Table) Capacity() int {
	return t.capacity
}

// Occupancy returns the current occupancy state.
func (t *Table) Occupancy() Occupancy {
	return t.occupancy
}

// OccupantName returns the checked-in guest's name, empty when available.
func (t *Table) OccupantName() string {
	return t.occupantName
}

// CheckIn claims the table for the named guest. Fails with TableOccupiedError
// when a session is already active; the loser of a concurrent race sees
// exactly this error. occupantName is required because it attributes the
// subsequent order.
func (t *Table) CheckIn(occupantName string) error {
	if occupantName == "" {
		return errs.NewValueIsRequiredError("occupantName")
	}
	if t.occupancy == Occupied {
		return errs.NewTableOccupiedError(t.id.String(), t.occupantName)
	}

	t.occupancy = Occupied
	t.occupantName = occupantName
	return nil
}

// Release frees the table and clears the occupant name. Idempotent: releasing
// an already-available table is a no-op success, so payment completion and
// manual staff release can both call it safely.
func (t *Table) Release() {
	t.occupancy = Available
	t.occupantName = ""
}
