package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var (
	ErrReconcileTablesCommandIsNotConstructed = errors.New(
		"ReconcileTablesCommand must be created via NewReconcileTablesCommand constructor",
	)
	// ErrReconcileRequiresOperator is returned when the sweep is attempted
	// without the cross-tenant operator capability.
	ErrReconcileRequiresOperator = errors.New("table reconciliation requires the operator role")
)

// ReconcileTablesCommand triggers the corrective sweep that frees tables left
// occupied after a crash between an order's completion commit and its table
// release commit. It runs across tenants, so only the operator may issue it.
type ReconcileTablesCommand struct { //nolint:recvcheck //using for validation
	caller kernel.Caller

	guard guard.ConstructorGuard
}

// NewReconcileTablesCommand creates the sweep command for an operator caller.
func NewReconcileTablesCommand(caller kernel.Caller) (ReconcileTablesCommand, error) {
	if err := caller.Validate(); err != nil {
		return ReconcileTablesCommand{}, err
	}
	if !caller.IsOperator() {
		return ReconcileTablesCommand{}, ErrReconcileRequiresOperator
	}

	return ReconcileTablesCommand{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileTablesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTablesCommandIsNotConstructed)
}

// Caller returns the operator identity running the sweep.
func (c ReconcileTablesCommand) Caller() kernel.Caller {
	return c.caller
}
