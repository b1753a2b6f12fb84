package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrGetShopOrdersQueryIsNotConstructed = errors.New(
	"GetShopOrdersQuery must be created via NewGetShopOrdersQuery constructor",
)

// GetShopOrdersQuery retrieves the orders placed with one shop.
// Allowed for that shop's owner and for admins.
type GetShopOrdersQuery struct { //nolint:recvcheck //using for validation
	actor  user.Principal
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShopOrdersQuery creates a query scoped to one shop's orders.
func NewGetShopOrdersQuery(actor user.Principal, shopID kernel.UUID) (GetShopOrdersQuery, error) {
	q := GetShopOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setActor(actor),
		q.setShopID(shopID),
	); err != nil {
		return GetShopOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShopOrdersQueryIsNotConstructed if validation fails.
func (q GetShopOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetShopOrdersQueryIsNotConstructed)
}

// Actor returns the principal requesting the listing.
func (q GetShopOrdersQuery) Actor() user.Principal {
	return q.actor
}

// ShopID returns the shop whose orders are listed.
func (q GetShopOrdersQuery) ShopID() kernel.UUID {
	return q.shopID
}

func (q *GetShopOrdersQuery) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *GetShopOrdersQuery) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	q.shopID = shopID
	return nil
}
