package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var (
	ErrGetMenuQueryIsNotConstructed = errors.New(
		"GetMenuQuery must be created via NewGetMenuQuery constructor",
	)
)

// GetMenuQuery retrieves the orderable catalog for the caller's tenant.
// Returns only available items, so the response is exactly what a guest may
// put on an order.
//
// Example:
//
//	query := NewGetMenuQuery(caller)
//	handler := NewGetMenuQueryHandler(db)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get menu: %w", err)
//	}
//
//	for _, item := range items {
//	    fmt.Printf("%s / %s: %s\n", item.Category, item.Name, item.Price)
//	}
type GetMenuQuery struct {
	caller kernel.Caller

	guard guard.ConstructorGuard
}

// NewGetMenuQuery creates a query for the caller's tenant menu.
func NewGetMenuQuery(caller kernel.Caller) (GetMenuQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetMenuQuery{}, err
	}
	return GetMenuQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

// Caller returns the requesting actor.
func (q GetMenuQuery) Caller() kernel.Caller {
	return q.caller
}

// GetMenuQueryResponse is one orderable menu item.
type GetMenuQueryResponse struct {
	ID          kernel.UUID
	Category    string
	Name        string
	Description string
	Price       kernel.Money
}
