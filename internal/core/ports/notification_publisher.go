package ports

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
)

// Realtime event names delivered to marketplace participants.
const (
	EventNewOrder                = "new-order"
	EventOrderCreated            = "order-created"
	EventOrderStatusUpdated      = "order-status-updated"
	EventOrderAssigned           = "order-assigned"
	EventDeliveryLocationUpdated = "delivery-location-updated"
)

// RoomClient returns the notification room for a client's personal updates.
func RoomClient(clientID kernel.UUID) string {
	return fmt.Sprintf("client-%s", clientID)
}

// RoomShop returns the notification room shared by a shop's staff.
func RoomShop(shopID kernel.UUID) string {
	return fmt.Sprintf("shop-%s", shopID)
}

// RoomCourier returns the notification room for a courier's assignments.
func RoomCourier(courierID kernel.UUID) string {
	return fmt.Sprintf("delivery-%s", courierID)
}

// Event is a realtime notification addressed to a set of rooms.
// Payload must be JSON-serializable.
type Event struct {
	Name    string
	Rooms   []string
	Payload any
}

// NotificationPublisher fans events out to interested participants.
// Publishing is best effort and happens after the originating transaction
// commits; implementations must not fail the business operation.
type NotificationPublisher interface {
	Publish(ctx context.Context, event Event)
}
