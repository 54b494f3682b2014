// Package menurepo persists menu items. Prices live here as decimal columns;
// orders copy them into line snapshots at placement, so repricing a menu item
// never rewrites history.
package menurepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO is the database representation of a menu item.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	Category    string
	Name        string
	Description string
	Price       string `gorm:"type:decimal(8,2)"`
	Available   bool
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(m *menu.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          m.ID().Bytes(),
		TenantID:    m.TenantID().Bytes(),
		Category:    m.Category(),
		Name:        m.Name(),
		Description: m.Description(),
		Price:       m.Price().String(),
		Available:   m.IsAvailable(),
	}
}

func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoneyFromString(dto.Price)
	if err != nil {
		return nil, err
	}

	return menu.RestoreMenuItem(id, tenantID, dto.Category, dto.Name, dto.Description, price, dto.Available)
}
