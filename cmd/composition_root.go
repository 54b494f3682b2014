package cmd

import (
	"log/slog"

	"tableside/internal/adapters/out/postgres"
	"tableside/internal/coordination"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/jobs"
	"tableside/internal/pkg/keyedmutex"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *keyedmutex.KeyedMutex
	bus        *coordination.Bus
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	busOpts := []coordination.Option{}
	if cfg.AMQPURL != "" {
		mirror, err := coordination.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
		busOpts = append(busOpts, coordination.WithMirror(mirror))
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      keyedmutex.New(),
		bus:        coordination.NewBus(logger, busOpts...),
		logger:     logger,
	}, nil
}

// Bus exposes the coordination bus for subscribers and the refresh job.
func (c *CompositionRoot) Bus() *coordination.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateCheckInTableCommandHandler() commands.CheckInTableCommandHandler {
	var f commands.TableUoWFactory = FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckInTableCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateReleaseTableCommandHandler() commands.ReleaseTableCommandHandler {
	var f commands.TableUoWFactory = FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseTableCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateCollectPaymentCommandHandler() commands.CollectPaymentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCollectPaymentCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateReconcileTablesCommandHandler() commands.ReconcileTablesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileTablesCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTableStatusQueryHandler() queries.GetTableStatusQueryHandler {
	return queries.NewGetTableStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(cfg Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileTablesCommandHandler(),
		c.bus,
		cfg.ReconcileSchedule,
		cfg.RefreshInterval,
		c.logger,
	)
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
