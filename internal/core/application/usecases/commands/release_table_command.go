package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var (
	ErrReleaseTableCommandIsNotConstructed = errors.New(
		"ReleaseTableCommand must be created via NewReleaseTableCommand constructor",
	)
)

// ReleaseTableCommand represents a request to free a table, either by staff
// clearing it manually or by the payment flow after an order completes.
// Releasing an already-available table succeeds as a no-op.
type ReleaseTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID
	caller  kernel.Caller

	guard guard.ConstructorGuard
}

// NewReleaseTableCommand creates a command to free a table.
func NewReleaseTableCommand(tableID kernel.UUID, caller kernel.Caller) (ReleaseTableCommand, error) {
	cmd := ReleaseTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tableID.Validate(),
		caller.Validate(),
	); err != nil {
		return ReleaseTableCommand{}, err
	}

	cmd.tableID = tableID
	cmd.caller = caller
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseTableCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTableCommandIsNotConstructed)
}

// TableID returns the table to free.
func (c ReleaseTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// Caller returns the acting tenant identity and role.
func (c ReleaseTableCommand) Caller() kernel.Caller {
	return c.caller
}
