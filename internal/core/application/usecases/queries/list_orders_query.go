package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrStatusesAreRequired = errors.New("at least one status filter is required")
)

// ListOrdersQuery retrieves the caller tenant's orders filtered by status.
// The kitchen board polls with [placed, preparing], the cashier with [ready,
// served]. Results come back oldest first, which is the work order both
// stations want.
type ListOrdersQuery struct {
	caller   kernel.Caller
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a status-filtered order listing query.
func NewListOrdersQuery(caller kernel.Caller, statuses []order.Status) (ListOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if len(statuses) == 0 {
		return ListOrdersQuery{}, ErrStatusesAreRequired
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		caller:   caller,
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Caller returns the requesting actor.
func (q ListOrdersQuery) Caller() kernel.Caller {
	return q.caller
}

// Statuses returns the status filter.
func (q ListOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

// ListOrdersQueryResponse is one order on a station board.
type ListOrdersQueryResponse struct {
	ID           kernel.UUID
	TableID      kernel.UUID
	OccupantName string
	Status       string
	Total        kernel.Money
	CreatedAt    time.Time
	Lines        []ListOrdersQueryLine
}

// ListOrdersQueryLine is one line of a board order. The kitchen needs the
// items and quantities, not just the header.
type ListOrdersQueryLine struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
}
