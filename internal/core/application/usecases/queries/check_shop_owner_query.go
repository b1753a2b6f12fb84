package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCheckShopOwnerQueryIsNotConstructed = errors.New(
	"CheckShopOwnerQuery must be created via NewCheckShopOwnerQuery constructor",
)

// CheckShopOwnerQuery asks whether a shop belongs to a given owner.
type CheckShopOwnerQuery struct { //nolint:recvcheck //using for validation
	shopID  kernel.UUID
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckShopOwnerQuery creates a shop ownership check.
func NewCheckShopOwnerQuery(shopID, ownerID kernel.UUID) (CheckShopOwnerQuery, error) {
	q := CheckShopOwnerQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setShopID(shopID),
		q.setOwnerID(ownerID),
	); err != nil {
		return CheckShopOwnerQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckShopOwnerQueryIsNotConstructed if validation fails.
func (q CheckShopOwnerQuery) Validate() error {
	return q.guard.Validate(ErrCheckShopOwnerQueryIsNotConstructed)
}

// ShopID returns the shop being checked.
func (q CheckShopOwnerQuery) ShopID() kernel.UUID {
	return q.shopID
}

// OwnerID returns the candidate owner.
func (q CheckShopOwnerQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q *CheckShopOwnerQuery) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	q.shopID = shopID
	return nil
}

func (q *CheckShopOwnerQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	q.ownerID = ownerID
	return nil
}
