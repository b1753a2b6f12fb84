package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCourierDeliveryRoomsQueryIsNotConstructed = errors.New(
	"GetCourierDeliveryRoomsQuery must be created via NewGetCourierDeliveryRoomsQuery constructor",
)

// GetCourierDeliveryRoomsQuery resolves which notification rooms should
// receive a courier's location updates: the client and shop rooms of every
// order the courier currently has in delivery.
type GetCourierDeliveryRoomsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierDeliveryRoomsQuery creates a query for a courier's active rooms.
func NewGetCourierDeliveryRoomsQuery(courierID kernel.UUID) (GetCourierDeliveryRoomsQuery, error) {
	q := GetCourierDeliveryRoomsQuery{guard: guard.NewConstructorGuard()}

	if err := q.setCourierID(courierID); err != nil {
		return GetCourierDeliveryRoomsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierDeliveryRoomsQueryIsNotConstructed if validation fails.
func (q GetCourierDeliveryRoomsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDeliveryRoomsQueryIsNotConstructed)
}

// CourierID returns the courier whose active delivery rooms are resolved.
func (q GetCourierDeliveryRoomsQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierDeliveryRoomsQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}
