package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for shop catalog items.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// DecrementStock atomically reduces the product's stock by quantity.
	// The decrement only applies when enough stock remains; otherwise an
	// insufficient-stock error is returned and nothing changes.
	DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error

	// RestoreStock returns quantity units to the product's stock.
	// Used when an order is cancelled before delivery.
	RestoreStock(ctx context.Context, id kernel.UUID, quantity int) error
}
