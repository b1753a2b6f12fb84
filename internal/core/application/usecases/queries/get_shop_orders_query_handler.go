package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/pkg/errs"
)

// GetShopOrdersQueryHandler lists the incoming orders of one shop.
type GetShopOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetShopOrdersQueryHandler creates a handler for per-shop order listings.
func NewGetShopOrdersQueryHandler(db *gorm.DB) GetShopOrdersQueryHandler {
	return GetShopOrdersQueryHandler{db: db}
}

// Handle executes the listing. Non-admin actors must own the shop;
// the ownership check goes against the shops table.
func (h GetShopOrdersQueryHandler) Handle(ctx context.Context, query GetShopOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsAdmin() {
		var owners int64
		err := h.db.WithContext(ctx).Raw(`
			SELECT COUNT(*) FROM shops WHERE id = ? AND owner_id = ?
		`, query.ShopID().Bytes(), query.Actor().ID.Bytes()).Scan(&owners).Error
		if err != nil {
			return nil, err
		}
		if owners == 0 {
			return nil, errs.NewForbiddenError("list another shop's orders")
		}
	}

	return fetchOrders(ctx, h.db,
		`WHERE shop_id = ? ORDER BY created_at DESC`, query.ShopID().Bytes())
}
