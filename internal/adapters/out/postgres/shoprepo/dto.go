// Package shoprepo persists shops and their ownership for authorization checks.
package shoprepo

import (
	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shop"
)

// ShopDTO represents the database structure for shops.
type ShopDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`
	Slug    string    `gorm:"uniqueIndex;not null"`
}

// TableName specifies the database table name for shops.
func (ShopDTO) TableName() string {
	return "shops"
}

func fromDomain(s *shop.Shop) ShopDTO {
	return ShopDTO{
		ID:      s.ID().Bytes(),
		OwnerID: s.OwnerID().Bytes(),
		Name:    s.Name(),
		Slug:    s.Slug(),
	}
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return shop.RestoreShop(id, ownerID, dto.Name, dto.Slug)
}
