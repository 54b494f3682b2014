package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/services"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/keyedmutex"
)

// CheckInTableCommandHandler handles the contended table-claim operation.
//
// Two near-simultaneous check-ins for the same table must resolve to exactly
// one success and one TableOccupiedError. The handler serializes the whole
// read-modify-write per table id, so the loser always observes the winner's
// committed occupancy.
type CheckInTableCommandHandler struct {
	uowFactory TableUoWFactory
	scopeGuard services.TenantScopeGuard
	locks      *keyedmutex.KeyedMutex
	publisher  ports.EventPublisher
}

// NewCheckInTableCommandHandler creates a handler for table check-in operations.
func NewCheckInTableCommandHandler(
	uowFactory TableUoWFactory,
	locks *keyedmutex.KeyedMutex,
	publisher ports.EventPublisher,
) CheckInTableCommandHandler {
	return CheckInTableCommandHandler{
		uowFactory: uowFactory,
		scopeGuard: services.NewTenantScopeGuard(),
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the check-in command. On success the table is occupied by
// the named guest and an occupancy event is published.
func (h *CheckInTableCommandHandler) Handle(ctx context.Context, cmd CheckInTableCommand) error {
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

	if err = tbl.CheckIn(cmd.OccupantName()); err != nil {
		return err
	}

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
