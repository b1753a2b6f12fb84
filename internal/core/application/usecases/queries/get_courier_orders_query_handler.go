package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/pkg/errs"
)

// GetCourierOrdersQueryHandler lists the orders assigned to a courier.
type GetCourierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierOrdersQueryHandler creates a handler for per-courier listings.
func NewGetCourierOrdersQueryHandler(db *gorm.DB) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db}
}

// Handle executes the listing. Couriers may only see their own
// assignments; admins may see any courier's.
func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context, query GetCourierOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() && !(actor.IsCourier() && actor.ID.IsEqual(query.CourierID())) {
		return nil, errs.NewForbiddenError("list another courier's orders")
	}

	return fetchOrders(ctx, h.db,
		`WHERE courier_id = ? ORDER BY created_at DESC`, query.CourierID().Bytes())
}
