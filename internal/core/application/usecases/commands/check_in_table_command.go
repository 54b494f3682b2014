package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrCheckInTableCommandIsNotConstructed = errors.New(
		"CheckInTableCommand must be created via NewCheckInTableCommand constructor",
	)
)

// CheckInTableCommand represents a guest's request to claim a table after
// scanning its QR code. The occupant name attributes the subsequent order to
// the guest.
//
// Example:
//
//	cmd, err := NewCheckInTableCommand(tableID, caller, "Alice")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrTableOccupied means another guest won the race
//	}
type CheckInTableCommand struct { //nolint:recvcheck //using for validation
	tableID      kernel.UUID
	caller       kernel.Caller
	occupantName string

	guard guard.ConstructorGuard
}

// NewCheckInTableCommand creates a command to claim a table for a named guest.
// Validates the table id, the caller, and that the name is not empty.
func NewCheckInTableCommand(tableID kernel.UUID, caller kernel.Caller, occupantName string) (CheckInTableCommand, error) {
	cmd := CheckInTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTableID(tableID),
		cmd.setCaller(caller),
		cmd.setOccupantName(occupantName),
	); err != nil {
		return CheckInTableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckInTableCommand) Validate() error {
	return c.guard.Validate(ErrCheckInTableCommandIsNotConstructed)
}

// TableID returns the table to claim.
func (c CheckInTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// Caller returns the acting tenant identity and role.
func (c CheckInTableCommand) Caller() kernel.Caller {
	return c.caller
}

// OccupantName returns the guest name to record on the table.
func (c CheckInTableCommand) OccupantName() string {
	return c.occupantName
}

func (c *CheckInTableCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}

func (c *CheckInTableCommand) setCaller(caller kernel.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CheckInTableCommand) setOccupantName(occupantName string) error {
	if occupantName == "" {
		return errs.NewValueIsRequiredError("occupantName")
	}
	c.occupantName = occupantName
	return nil
}
