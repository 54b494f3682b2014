package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/services"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/keyedmutex"
)

// CollectPaymentCommandHandler settles an order and frees its table.
//
// The two effects are separate atomic units, strictly sequenced: the order's
// completion commits first, then the table release commits. A crash between
// the two leaves the order correctly completed with the table still occupied,
// which the reconciliation sweep repairs; nothing is ever silently lost.
//
// The order lock and the table lock are never held at the same time, keeping
// the no-cross-entity-locks rule that makes deadlock impossible.
type CollectPaymentCommandHandler struct {
	uowFactory UoWFactory
	scopeGuard services.TenantScopeGuard
	locks      *keyedmutex.KeyedMutex
	publisher  ports.EventPublisher
}

// NewCollectPaymentCommandHandler creates a handler for payment collection.
func NewCollectPaymentCommandHandler(
	uowFactory UoWFactory,
	locks *keyedmutex.KeyedMutex,
	publisher ports.EventPublisher,
) CollectPaymentCommandHandler {
	return CollectPaymentCommandHandler{
		uowFactory: uowFactory,
		scopeGuard: services.NewTenantScopeGuard(),
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle completes the order (cashier role gates the edge, so payment may fire
// from ready or served) and then releases the table.
func (h *CollectPaymentCommandHandler) Handle(ctx context.Context, cmd CollectPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	tableID, err := h.completeOrder(ctx, cmd)
	if err != nil {
		return err
	}

	return h.releaseTable(ctx, cmd, tableID)
}

func (h *CollectPaymentCommandHandler) completeOrder(ctx context.Context, cmd CollectPaymentCommand) (kernel.UUID, error) {
	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.scopeGuard.Authorize(cmd.Caller(), o.TenantID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = o.Advance(order.Completed, cmd.Caller().Role()); err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventOrderStatusChanged,
		TenantID:   o.TenantID().String(),
		OrderID:    o.ID().String(),
		TableID:    o.TableID().String(),
		Status:     o.Status().String(),
		Method:     string(cmd.Method()),
		OccurredAt: time.Now(),
	})

	return o.TableID(), nil
}

func (h *CollectPaymentCommandHandler) releaseTable(ctx context.Context, cmd CollectPaymentCommand, tableID kernel.UUID) error {
	unlock := h.locks.Lock(tableID.String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()
	tbl, err := tableRepo.Get(ctx, tableID)
	if err != nil {
		return err
	}

	if err = h.scopeGuard.Authorize(cmd.Caller(), tbl.TenantID()); err != nil {
		return err
	}

	tbl.Release()

	if err = tableRepo.Update(ctx, tbl); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventTableOccupancyChange,
		TenantID:   tbl.TenantID().String(),
		TableID:    tbl.ID().String(),
		Occupancy:  tbl.Occupancy().String(),
		OccurredAt: time.Now(),
	})

	return nil
}
