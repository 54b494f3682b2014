package tablerepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements TableRepository using GORM.
type GormTableRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTableRepository creates a new GORM table repository.
func NewGormTableRepository(db *gorm.DB, tracker aggregateTracker) *GormTableRepository {
	return &GormTableRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new table to the database.
func (r *GormTableRepository) Add(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageUnavailableError("add table", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing table to the database. Occupant name is included
// in the column list explicitly so releasing a table clears it instead of
// being skipped as a zero value.
func (r *GormTableRepository) Update(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TableDTO{}).Where("id = ?", dto.ID).
		Select("Occupancy", "OccupantName").Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageUnavailableError("update table", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("table", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a table by ID.
func (r *GormTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, errs.NewStorageUnavailableError("get table", err)
	}

	return toDomain(dto)
}

// GetAllOccupied retrieves every occupied table across all tenants. Only the
// reconciliation sweep calls it, under operator authority.
func (r *GormTableRepository) GetAllOccupied(ctx context.Context) ([]*table.Table, error) {
	var dtos []TableDTO
	err := r.db.WithContext(ctx).
		Where("occupancy = ?", table.Occupied.String()).
		Order("tenant_id, number").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageUnavailableError("list occupied tables", err)
	}

	tables := make([]*table.Table, 0, len(dtos))
	for _, dto := range dtos {
		t, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		tables = append(tables, t)
	}

	return tables, nil
}
