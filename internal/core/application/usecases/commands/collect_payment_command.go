package commands

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrCollectPaymentCommandIsNotConstructed = errors.New(
		"CollectPaymentCommand must be created via NewCollectPaymentCommand constructor",
	)
)

// PaymentMethod identifies how the guest settled the bill. The core records
// the method on the completion event; actual gateway integration lives
// outside this system.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Validate rejects methods outside {cash, card}.
func (m PaymentMethod) Validate() error {
	if m != PaymentCash && m != PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a known payment method", string(m)))
	}
	return nil
}

// CollectPaymentCommand represents the cashier settling an order: the order
// completes and its table is freed for the next guest.
type CollectPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.Caller
	method  PaymentMethod

	guard guard.ConstructorGuard
}

// NewCollectPaymentCommand creates a command to collect payment for an order.
func NewCollectPaymentCommand(orderID kernel.UUID, caller kernel.Caller, method PaymentMethod) (CollectPaymentCommand, error) {
	cmd := CollectPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		caller.Validate(),
		method.Validate(),
	); err != nil {
		return CollectPaymentCommand{}, err
	}

	cmd.orderID = orderID
	cmd.caller = caller
	cmd.method = method
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectPaymentCommand) Validate() error {
	return c.guard.Validate(ErrCollectPaymentCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c CollectPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Caller returns the acting tenant identity and role.
func (c CollectPaymentCommand) Caller() kernel.Caller {
	return c.caller
}

// Method returns the payment method.
func (c CollectPaymentCommand) Method() PaymentMethod {
	return c.method
}
