package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"tableside/internal/coordination"
	"tableside/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tableReconciliationJob *TableReconciliationJob
	busRefreshJob          *BusRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the reconciliation handler and coordination bus as dependencies
// to wire up the job execution.
func NewJobManager(
	reconcileHandler commands.ReconcileTablesCommandHandler,
	bus *coordination.Bus,
	reconcileSchedule string,
	refreshInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		tableReconciliationJob: NewTableReconciliationJob(reconcileHandler, reconcileSchedule, logger),
		busRefreshJob:          NewBusRefreshJob(bus, refreshInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tableReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start table reconciliation job: %w", err)
	}

	if err := jm.busRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.tableReconciliationJob.Stop()
		return fmt.Errorf("failed to start bus refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.busRefreshJob.Stop()
	jm.tableReconciliationJob.Stop()
}
