package commands

import (
	"context"
	"errors"
	"time"

	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/services"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
)

// PlaceOrderCommandHandler creates an order from the menu catalog.
//
// For each requested line the referenced menu item must exist in the caller's
// tenant and be available; its current unit price is snapshotted into the
// line item so later catalog price changes never affect this order. The order,
// its lines, and the derived total are committed as a single atomic unit.
//
// Claiming the table is not part of placement: check-in happens earlier in the
// guest's workflow, and the handler only reads the table to verify tenant
// scope and pick up the occupant name for attribution.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	scopeGuard services.TenantScopeGuard
	publisher  ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		scopeGuard: services.NewTenantScopeGuard(),
		publisher:  publisher,
	}
}

// Handle processes the placement command and returns the created order.
// Fails with ItemUnavailableError if any referenced item is missing, belongs
// to another tenant, or is disabled.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tbl, err := uow.TableRepository().Get(ctx, cmd.TableID())
	if err != nil {
		return nil, err
	}

	if err = h.scopeGuard.Authorize(cmd.Caller(), tbl.TenantID()); err != nil {
		return nil, err
	}

	menuRepo := uow.MenuItemRepository()
	lines := make([]order.LineItem, 0, len(cmd.Lines()))
	for _, requested := range cmd.Lines() {
		item, itemErr := menuRepo.Get(ctx, requested.MenuItemID)
		if itemErr != nil {
			if errors.Is(itemErr, errs.ErrObjectNotFound) {
				return nil, errs.NewItemUnavailableErrorWithCause(requested.MenuItemID.String(), itemErr)
			}
			return nil, itemErr
		}

		// An item from another tenant is indistinguishable from a missing
		// one for the customer; both surface as ItemUnavailable.
		if !item.TenantID().IsEqual(tbl.TenantID()) || !item.IsAvailable() {
			return nil, errs.NewItemUnavailableError(requested.MenuItemID.String())
		}

		line, lineErr := order.NewLineItem(item.ID(), requested.Quantity, item.Price())
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), tbl.TenantID(), tbl.ID(), tbl.OccupantName(), lines, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventOrderPlaced,
		TenantID:   o.TenantID().String(),
		OrderID:    o.ID().String(),
		TableID:    o.TableID().String(),
		Status:     o.Status().String(),
		OccurredAt: time.Now(),
	})

	return o, nil
}
