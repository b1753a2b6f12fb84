package queries

import (
	"context"

	"gorm.io/gorm"
)

// CheckShopOwnerQueryHandler verifies shop ownership against the shops table.
// The realtime gateway uses it to gate shop room subscriptions.
type CheckShopOwnerQueryHandler struct {
	db *gorm.DB
}

// NewCheckShopOwnerQueryHandler creates a handler for ownership checks.
func NewCheckShopOwnerQueryHandler(db *gorm.DB) CheckShopOwnerQueryHandler {
	return CheckShopOwnerQueryHandler{db: db}
}

// Handle reports whether the shop exists and belongs to the owner.
func (h CheckShopOwnerQueryHandler) Handle(ctx context.Context, query CheckShopOwnerQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	var owners int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM shops WHERE id = ? AND owner_id = ?
	`, query.ShopID().Bytes(), query.OwnerID().Bytes()).Scan(&owners).Error
	if err != nil {
		return false, err
	}

	return owners > 0, nil
}
