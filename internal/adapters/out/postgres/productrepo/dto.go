// Package productrepo persists the shop catalog and handles the stock
// mutations that order placement and cancellation require.
package productrepo

import (
	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductDTO represents the database structure for catalog items.
type ProductDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name   string    `gorm:"not null"`
	Price  int64     `gorm:"not null"`
	Stock  int       `gorm:"not null"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:     p.ID().Bytes(),
		ShopID: p.ShopID().Bytes(),
		Name:   p.Name(),
		Price:  p.Price().Int64(),
		Stock:  p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, shopID, dto.Name, price, dto.Stock)
}
