package commands

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrRequestedLinesAreRequired = errors.New("at least one requested line is required")
)

// RequestedLine is one (menu item, quantity) pair of an order request, before
// the catalog has been consulted. Prices are never accepted from the client;
// they are snapshotted from the catalog at placement time.
type RequestedLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand represents a guest's request to create an order from the
// menu catalog for the table they checked in at.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(orderID, tableID, caller, []RequestedLine{
//	    {MenuItemID: burgerID, Quantity: 2},
//	    {MenuItemID: friesID, Quantity: 1},
//	})
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	tableID kernel.UUID
	caller  kernel.Caller
	lines   []RequestedLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order. The requested
// lines must be non-empty and each quantity at least 1; menu items are
// resolved later by the handler inside the transaction.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	tableID kernel.UUID,
	caller kernel.Caller,
	lines []RequestedLine,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		tableID.Validate(),
		caller.Validate(),
		validateRequestedLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.tableID = tableID
	cmd.caller = caller
	cmd.lines = append([]RequestedLine(nil), lines...)
	return cmd, nil
}

func validateRequestedLines(lines []RequestedLine) error {
	if len(lines) == 0 {
		return ErrRequestedLinesAreRequired
	}
	for i, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("line %d: %d is less than 1", i, line.Quantity))
		}
	}
	return nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the order to create.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TableID returns the table the order is placed from.
func (c PlaceOrderCommand) TableID() kernel.UUID {
	return c.tableID
}

// Caller returns the acting tenant identity and role.
func (c PlaceOrderCommand) Caller() kernel.Caller {
	return c.caller
}

// Lines returns a copy of the requested lines in their original sequence.
func (c PlaceOrderCommand) Lines() []RequestedLine {
	return append([]RequestedLine(nil), c.lines...)
}
