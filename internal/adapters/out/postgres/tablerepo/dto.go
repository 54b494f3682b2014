// Package tablerepo persists table aggregates.
package tablerepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO is the database representation of a dining table.
type TableDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;index"`
	Number       int
	Capacity     int
	Occupancy    string `gorm:"type:varchar(16);index"`
	OccupantName string
}

// TableName overrides GORM's default naming to use "tables".
func (TableDTO) TableName() string {
	return "tables"
}

func fromDomain(t *table.Table) TableDTO {
	return TableDTO{
		ID:           t.ID().Bytes(),
		TenantID:     t.TenantID().Bytes(),
		Number:       t.Number(),
		Capacity:     t.Capacity(),
		Occupancy:    t.Occupancy().String(),
		OccupantName: t.OccupantName(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	occupancy, err := table.OccupancyFromString(dto.Occupancy)
	if err != nil {
		return nil, err
	}

	return table.RestoreTable(id, tenantID, dto.Number, dto.Capacity, occupancy, dto.OccupantName)
}
