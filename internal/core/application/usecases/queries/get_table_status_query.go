package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetTableStatusQueryIsNotConstructed = errors.New(
		"GetTableStatusQuery must be created via NewGetTableStatusQuery constructor",
	)
)

// GetTableStatusQuery retrieves the occupancy of a single table. Guests poll
// this before attempting a check-in; the answer is advisory since the claim
// itself is arbitrated by the check-in command.
type GetTableStatusQuery struct {
	tableID kernel.UUID
	caller  kernel.Caller

	guard guard.ConstructorGuard
}

// NewGetTableStatusQuery creates a query for one table's occupancy.
func NewGetTableStatusQuery(tableID kernel.UUID, caller kernel.Caller) (GetTableStatusQuery, error) {
	if err := errors.Join(
		tableID.Validate(),
		caller.Validate(),
	); err != nil {
		return GetTableStatusQuery{}, err
	}
	return GetTableStatusQuery{
		tableID: tableID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTableStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetTableStatusQueryIsNotConstructed)
}

// TableID returns the identifier of the queried table.
func (q GetTableStatusQuery) TableID() kernel.UUID {
	return q.tableID
}

// Caller returns the requesting actor.
func (q GetTableStatusQuery) Caller() kernel.Caller {
	return q.caller
}

// GetTableStatusQueryResponse is the occupancy snapshot of one table.
type GetTableStatusQueryResponse struct {
	ID           kernel.UUID
	Number       int
	Capacity     int
	Occupancy    string
	OccupantName string
}
