// Package services contains stateless domain services that coordinate rules
// spanning more than one aggregate. The only service in the coordination core
// is the tenant scope guard.
package services

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// TenantScopeGuard authorizes operations against the tenant owning the target
// entity. Every command and query handler routes through it before loading or
// mutating anything; no storage access bypasses the check.
//
// The guard is a pure function of the caller and the owner tenant: it has no
// side effects and must be invoked before a mutation, never after.
//
// Example usage:
//
//	guard := services.NewTenantScopeGuard()
//	if err := guard.Authorize(caller, order.TenantID()); err != nil {
//	    return err // *errs.ScopeViolationError
//	}
type TenantScopeGuard struct{}

// NewTenantScopeGuard creates a TenantScopeGuard instance.
func NewTenantScopeGuard() TenantScopeGuard {
	return TenantScopeGuard{}
}

// Authorize returns nil when the caller's tenant matches ownerTenant, or when
// the caller holds the cross-tenant operator capability. Otherwise it returns
// a ScopeViolationError recording both tenants.
func (g TenantScopeGuard) Authorize(caller kernel.Caller, ownerTenant kernel.UUID) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if err := ownerTenant.Validate(); err != nil {
		return err
	}

	if caller.IsOperator() {
		return nil
	}
	if caller.TenantID().IsEqual(ownerTenant) {
		return nil
	}

	return errs.NewScopeViolationError(caller.TenantID().String(), ownerTenant.String())
}
