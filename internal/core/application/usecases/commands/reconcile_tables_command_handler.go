package commands

import (
	"context"
	"errors"
	"time"

	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/keyedmutex"
)

// ReconcileTablesCommandHandler repairs tables orphaned by a crash between
// the payment flow's two commits: the order completed but the table release
// never happened. Each repair is its own transaction under the table's lock,
// so the sweep never fights a live check-in.
type ReconcileTablesCommandHandler struct {
	uowFactory UoWFactory
	locks      *keyedmutex.KeyedMutex
	publisher  ports.EventPublisher
}

// NewReconcileTablesCommandHandler creates a handler for the reconciliation sweep.
func NewReconcileTablesCommandHandler(
	uowFactory UoWFactory,
	locks *keyedmutex.KeyedMutex,
	publisher ports.EventPublisher,
) ReconcileTablesCommandHandler {
	return ReconcileTablesCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle scans occupied tables and releases those whose most recent order has
// completed. Returns the number of tables repaired.
func (h *ReconcileTablesCommandHandler) Handle(ctx context.Context, cmd ReconcileTablesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	occupied, err := h.scanOccupied(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, tbl := range occupied {
		released, repairErr := h.repairTable(ctx, tbl)
		if repairErr != nil {
			return repaired, repairErr
		}
		if released {
			repaired++
		}
	}

	return repaired, nil
}

func (h *ReconcileTablesCommandHandler) scanOccupied(ctx context.Context) ([]*table.Table, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	occupied, err := uow.TableRepository().GetAllOccupied(ctx)
	if err != nil {
		return nil, err
	}

	return occupied, uow.Commit(ctx)
}

func (h *ReconcileTablesCommandHandler) repairTable(ctx context.Context, candidate *table.Table) (bool, error) {
	unlock := h.locks.Lock(candidate.ID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Re-read under the lock; the table may have been released or re-claimed
	// since the scan.
	tbl, err := uow.TableRepository().Get(ctx, candidate.ID())
	if err != nil {
		return false, err
	}
	if tbl.Occupancy() != table.Occupied {
		return false, uow.Commit(ctx)
	}

	latest, err := uow.OrderRepository().GetLatestForTable(ctx, tbl.ID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Occupied table with no order yet: a guest checked in and has
			// not ordered. Not an orphan.
			return false, uow.Commit(ctx)
		}
		return false, err
	}

	if !latest.Status().IsTerminal() {
		return false, uow.Commit(ctx)
	}

	tbl.Release()
	if err = uow.TableRepository().Update(ctx, tbl); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventTableOccupancyChange,
		TenantID:   tbl.TenantID().String(),
		TableID:    tbl.ID().String(),
		Occupancy:  tbl.Occupancy().String(),
		OccurredAt: time.Now(),
	})

	return true, nil
}
