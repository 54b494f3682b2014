package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tableside/internal/coordination"

	"github.com/robfig/cron/v3"
)

// BusRefreshJob periodically nudges coordination bus subscribers so board
// consumers that missed a dropped event still wake within the refresh
// interval and re-poll their queries.
type BusRefreshJob struct {
	bus      *coordination.Bus
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBusRefreshJob creates the refresh tick job.
func NewBusRefreshJob(bus *coordination.Bus, interval time.Duration, logger *slog.Logger) *BusRefreshJob {
	return &BusRefreshJob{
		bus:      bus,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "bus_refresh_job"),
	}
}

// Start begins broadcasting refresh ticks at the configured interval.
func (j *BusRefreshJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.bus.Nudge()
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Bus refresh job started", "interval", j.interval)
	return nil
}

// Stop stops the refresh ticks.
func (j *BusRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Bus refresh job stopped")
}
