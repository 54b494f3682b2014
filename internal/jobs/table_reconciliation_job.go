package jobs

import (
	"context"
	"log/slog"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// TableReconciliationJob manages the scheduled repair of stranded tables.
// A crash between completing an order and releasing its table leaves the
// table occupied forever; this sweep finds and releases such tables.
type TableReconciliationJob struct {
	handler  commands.ReconcileTablesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTableReconciliationJob creates the reconciliation sweep job.
// The schedule is a six-field cron expression with a seconds column.
func NewTableReconciliationJob(
	handler commands.ReconcileTablesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TableReconciliationJob {
	return &TableReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "table_reconciliation_job"),
	}
}

// Start begins the reconciliation sweep on the configured schedule.
func (j *TableReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		caller, err := kernel.NewCaller(kernel.NewUUID(), kernel.RoleOperator)
		if err != nil {
			j.logger.ErrorContext(ctx, "Table reconciliation job failed to build operator caller", "error", err)
			return
		}

		cmd, err := commands.NewReconcileTablesCommand(caller)
		if err != nil {
			j.logger.ErrorContext(ctx, "Table reconciliation job failed to build command", "error", err)
			return
		}

		repaired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Table reconciliation job failed", "error", err)
			return
		}
		if repaired > 0 {
			j.logger.InfoContext(ctx, "Table reconciliation job released stranded tables", "repaired", repaired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Table reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation sweep.
func (j *TableReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Table reconciliation job stopped")
}
