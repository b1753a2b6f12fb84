package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shop"
)

// ShopRepository defines the persistence contract for shops.
type ShopRepository interface {
	// Get retrieves a shop by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)

	// GetByOwner retrieves the shop owned by the given user.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*shop.Shop, error)
}
