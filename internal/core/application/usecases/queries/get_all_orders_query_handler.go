package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/pkg/errs"
)

// GetAllOrdersQueryHandler lists every order for back-office use.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for the admin order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the listing. Only admins may see all orders; everyone
// else gets a forbidden error.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsAdmin() {
		return nil, errs.NewForbiddenError("list all orders")
	}

	return fetchOrders(ctx, h.db, `ORDER BY created_at DESC`)
}
