package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/services"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/keyedmutex"
)

// AdvanceOrderCommandHandler applies a role-gated status transition to an
// order. The per-order lock prevents two staff members from racing conflicting
// transitions on the same order; the aggregate enforces the forward-only
// graph.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scopeGuard services.TenantScopeGuard
	locks      *keyedmutex.KeyedMutex
	publisher  ports.EventPublisher
}

// NewAdvanceOrderCommandHandler creates a handler for status advance operations.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keyedmutex.KeyedMutex,
	publisher ports.EventPublisher,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		scopeGuard: services.NewTenantScopeGuard(),
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the advance command. Fails with IllegalTransitionError when
// the target is not the immediate successor or the caller's role lacks the
// edge permission; idempotent replays succeed without an event.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.scopeGuard.Authorize(cmd.Caller(), o.TenantID()); err != nil {
		return err
	}

	replay := o.Status() == cmd.Target()

	if err = o.Advance(cmd.Target(), cmd.Caller().Role()); err != nil {
		return err
	}

	if replay {
		// The order is already there; nothing to persist or announce.
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventOrderStatusChanged,
		TenantID:   o.TenantID().String(),
		OrderID:    o.ID().String(),
		TableID:    o.TableID().String(),
		Status:     o.Status().String(),
		OccurredAt: time.Now(),
	})

	return nil
}
