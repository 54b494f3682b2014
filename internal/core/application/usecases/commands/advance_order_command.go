package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand represents a staff request to move an order to the next
// lifecycle status. The caller's role must own the requested edge; requesting
// the status the order is already in is a no-op success, which makes retries
// from polling dashboards harmless.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.Caller
	target  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order to target.
func NewAdvanceOrderCommand(orderID kernel.UUID, caller kernel.Caller, target order.Status) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		caller.Validate(),
		target.Validate(),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.caller = caller
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Caller returns the acting tenant identity and role.
func (c AdvanceOrderCommand) Caller() kernel.Caller {
	return c.caller
}

// Target returns the requested status.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}
