package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// GetCourierDeliveryRoomsQueryHandler resolves the rooms interested in a
// courier's live location from the courier's in-delivery orders.
type GetCourierDeliveryRoomsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierDeliveryRoomsQueryHandler creates a handler for room resolution.
func NewGetCourierDeliveryRoomsQueryHandler(db *gorm.DB) GetCourierDeliveryRoomsQueryHandler {
	return GetCourierDeliveryRoomsQueryHandler{db: db}
}

// Handle returns the deduplicated client and shop rooms of the courier's
// in-delivery orders. A courier with no active delivery gets no rooms.
func (h GetCourierDeliveryRoomsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierDeliveryRoomsQuery,
) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	type pairRow struct {
		ClientID uuid.UUID `gorm:"column:client_id"`
		ShopID   uuid.UUID `gorm:"column:shop_id"`
	}

	pairs := make([]pairRow, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT client_id, shop_id
		FROM orders
		WHERE courier_id = ? AND status = ?
	`, query.CourierID().Bytes(), order.StatusInDelivery.String()).Scan(&pairs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(pairs)*2)
	rooms := make([]string, 0, len(pairs)*2)
	for _, pair := range pairs {
		clientID, idErr := kernel.UUIDFromBytes(pair.ClientID[:])
		if idErr != nil {
			return nil, idErr
		}
		shopID, idErr := kernel.UUIDFromBytes(pair.ShopID[:])
		if idErr != nil {
			return nil, idErr
		}

		for _, room := range []string{ports.RoomClient(clientID), ports.RoomShop(shopID)} {
			if _, ok := seen[room]; ok {
				continue
			}
			seen[room] = struct{}{}
			rooms = append(rooms, room)
		}
	}

	return rooms, nil
}
