package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Role identifies which actor class is performing an operation. Status
// transitions and queries are gated per role; RoleOperator additionally holds
// the cross-tenant capability checked by the tenant scope guard.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleKitchen  Role = "kitchen"
	RoleWaiter   Role = "waiter"
	RoleCashier  Role = "cashier"
	// RoleOperator is the privileged cross-tenant operator used by the
	// administration surface and the reconciliation job.
	RoleOperator Role = "operator"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleCustomer: {},
		RoleKitchen:  {},
		RoleWaiter:   {},
		RoleCashier:  {},
		RoleOperator: {},
	}
}

// RoleFromString parses a role name as received from transport headers.
func RoleFromString(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate returns an error for any value outside the known role set.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// ErrCallerIsNotConstructed is returned when validating a zero-value Caller.
var ErrCallerIsNotConstructed = errs.NewValueIsRequiredError("Caller must be created via NewCaller")

// Caller carries the explicit tenant identity and role of the actor behind an
// operation. It replaces any implicit "current authenticated user" lookup;
// every core operation takes a Caller and routes it through the tenant scope
// guard before touching storage.
type Caller struct {
	tenantID UUID
	role     Role
}

// NewCaller creates a Caller after validating both the tenant identity and
// the role.
func NewCaller(tenantID UUID, role Role) (Caller, error) {
	if err := tenantID.Validate(); err != nil {
		return Caller{}, err
	}
	if err := role.Validate(); err != nil {
		return Caller{}, err
	}
	return Caller{tenantID: tenantID, role: role}, nil
}

// TenantID returns the caller's owning tenant.
func (c Caller) TenantID() UUID {
	return c.tenantID
}

// Role returns the caller's actor role.
func (c Caller) Role() Role {
	return c.role
}

// IsOperator reports whether the caller holds the cross-tenant capability.
func (c Caller) IsOperator() bool {
	return c.role == RoleOperator
}

// Validate returns ErrCallerIsNotConstructed for the zero value.
func (c Caller) Validate() error {
	if c.tenantID.Validate() != nil || c.role.Validate() != nil {
		return ErrCallerIsNotConstructed
	}
	return nil
}
