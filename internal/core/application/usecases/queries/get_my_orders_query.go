package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrGetMyOrdersQueryIsNotConstructed = errors.New(
	"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
)

// GetMyOrdersQuery retrieves the calling client's own orders.
type GetMyOrdersQuery struct { //nolint:recvcheck //using for validation
	actor user.Principal

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates a query scoped to the actor's own orders.
func NewGetMyOrdersQuery(actor user.Principal) (GetMyOrdersQuery, error) {
	q := GetMyOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := q.setActor(actor); err != nil {
		return GetMyOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMyOrdersQueryIsNotConstructed if validation fails.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// Actor returns the client whose orders are listed.
func (q GetMyOrdersQuery) Actor() user.Principal {
	return q.actor
}

func (q *GetMyOrdersQuery) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}
