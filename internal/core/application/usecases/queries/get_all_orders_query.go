package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order in the system. Admin only.
type GetAllOrdersQuery struct { //nolint:recvcheck //using for validation
	actor user.Principal

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query over the whole order store.
func NewGetAllOrdersQuery(actor user.Principal) (GetAllOrdersQuery, error) {
	q := GetAllOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := q.setActor(actor); err != nil {
		return GetAllOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// Actor returns the principal requesting the listing.
func (q GetAllOrdersQuery) Actor() user.Principal {
	return q.actor
}

func (q *GetAllOrdersQuery) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}
