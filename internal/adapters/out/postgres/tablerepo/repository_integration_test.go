package tablerepo_test

import (
	"context"
	"testing"
	"time"

	"tableside/internal/adapters/out/postgres/tablerepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// TableRepositoryIntegrationTestSuite verifies table persistence against a
// real PostgreSQL instance, including the occupant-name clear on release.
type TableRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *tablerepo.GormTableRepository
	tracker    *MockAggregateTracker
}

func (suite *TableRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&tablerepo.TableDTO{}))
}

func (suite *TableRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tables").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = tablerepo.NewGormTableRepository(suite.db, suite.tracker)
}

func (suite *TableRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TableRepositoryIntegrationTestSuite) addTable(t *table.Table) {
	suite.tracker.On("TrackAggregate", t.ID(), t).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), t))
}

func (suite *TableRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	original, err := table.NewTable(kernel.NewUUID(), tenantID, 12, 4)
	suite.Require().NoError(err)
	suite.addTable(original)

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(tenantID, retrieved.TenantID())
	suite.Equal(12, retrieved.Number())
	suite.Equal(4, retrieved.Capacity())
	suite.Equal(table.Available, retrieved.Occupancy())
	suite.Empty(retrieved.OccupantName())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TableRepositoryIntegrationTestSuite) TestGet_NonExistentTable_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TableRepositoryIntegrationTestSuite) TestUpdate_PersistsCheckIn() {
	ctx := context.Background()
	tbl, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), 3, 2)
	suite.Require().NoError(err)
	suite.addTable(tbl)

	suite.Require().NoError(tbl.CheckIn("Alice"))
	suite.tracker.On("TrackAggregate", tbl.ID(), tbl).Once()
	suite.Require().NoError(suite.repository.Update(ctx, tbl))

	retrieved, err := suite.repository.Get(ctx, tbl.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Occupied, retrieved.Occupancy())
	suite.Equal("Alice", retrieved.OccupantName())
}

func (suite *TableRepositoryIntegrationTestSuite) TestUpdate_ReleaseClearsOccupantName() {
	ctx := context.Background()
	tbl, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), 3, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(tbl.CheckIn("Alice"))
	suite.addTable(tbl)

	tbl.Release()
	suite.tracker.On("TrackAggregate", tbl.ID(), tbl).Once()
	suite.Require().NoError(suite.repository.Update(ctx, tbl))

	retrieved, err := suite.repository.Get(ctx, tbl.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Available, retrieved.Occupancy())
	suite.Empty(retrieved.OccupantName())
}

func (suite *TableRepositoryIntegrationTestSuite) TestGetAllOccupied_ReturnsOnlyOccupied() {
	occupiedOne, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), 1, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(occupiedOne.CheckIn("Alice"))

	occupiedTwo, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), 2, 4)
	suite.Require().NoError(err)
	suite.Require().NoError(occupiedTwo.CheckIn("Bob"))

	free, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), 3, 4)
	suite.Require().NoError(err)

	for _, t := range []*table.Table{occupiedOne, occupiedTwo, free} {
		suite.addTable(t)
	}

	occupied, err := suite.repository.GetAllOccupied(context.Background())
	suite.Require().NoError(err)
	suite.Len(occupied, 2)
	for _, t := range occupied {
		suite.Equal(table.Occupied, t.Occupancy())
	}
}

func TestTableRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TableRepositoryIntegrationTestSuite))
}
