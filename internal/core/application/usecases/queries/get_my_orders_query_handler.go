package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetMyOrdersQueryHandler lists the orders a client has placed.
type GetMyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMyOrdersQueryHandler creates a handler for the client's order history.
func NewGetMyOrdersQueryHandler(db *gorm.DB) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{db: db}
}

// Handle executes the listing scoped to the actor's own client id,
// newest orders first.
func (h GetMyOrdersQueryHandler) Handle(ctx context.Context, query GetMyOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrders(ctx, h.db,
		`WHERE client_id = ? ORDER BY created_at DESC`, query.Actor().ID.Bytes())
}
