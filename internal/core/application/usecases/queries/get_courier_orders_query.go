package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrGetCourierOrdersQueryIsNotConstructed = errors.New(
	"GetCourierOrdersQuery must be created via NewGetCourierOrdersQuery constructor",
)

// GetCourierOrdersQuery retrieves the orders assigned to one courier.
// Allowed for that courier and for admins.
type GetCourierOrdersQuery struct { //nolint:recvcheck //using for validation
	actor     user.Principal
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierOrdersQuery creates a query scoped to one courier's orders.
func NewGetCourierOrdersQuery(actor user.Principal, courierID kernel.UUID) (GetCourierOrdersQuery, error) {
	q := GetCourierOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setActor(actor),
		q.setCourierID(courierID),
	); err != nil {
		return GetCourierOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierOrdersQueryIsNotConstructed if validation fails.
func (q GetCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOrdersQueryIsNotConstructed)
}

// Actor returns the principal requesting the listing.
func (q GetCourierOrdersQuery) Actor() user.Principal {
	return q.actor
}

// CourierID returns the courier whose orders are listed.
func (q GetCourierOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierOrdersQuery) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *GetCourierOrdersQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}
