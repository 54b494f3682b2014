package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/services"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/keyedmutex"
)

// ReleaseTableCommandHandler frees a table and clears its occupant name.
// Shares the per-table lock with check-in so a release never interleaves with
// a claim on the same table.
type ReleaseTableCommandHandler struct {
	uowFactory TableUoWFactory
	scopeGuard services.TenantScopeGuard
	locks      *keyedmutex.KeyedMutex
	publisher  ports.EventPublisher
}

// NewReleaseTableCommandHandler creates a handler for table release operations.
func NewReleaseTableCommandHandler(
	uowFactory TableUoWFactory,
	locks *keyedmutex.KeyedMutex,
	publisher ports.EventPublisher,
) ReleaseTableCommandHandler {
	return ReleaseTableCommandHandler{
		uowFactory: uowFactory,
		scopeGuard: services.NewTenantScopeGuard(),
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the release command. Idempotent: releasing an available
// table commits the same available state again and still publishes.
func (h *ReleaseTableCommandHandler) Handle(ctx context.Context, cmd ReleaseTableCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.TableID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()
	tbl, err := tableRepo.Get(ctx, cmd.TableID())
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
