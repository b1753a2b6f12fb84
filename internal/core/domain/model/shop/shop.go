// Package shop models the storefronts whose orders the core manages.
// Only identity and ownership matter to the order core: ownership drives the
// authorization predicates for status updates and courier assignment.
package shop

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrShopIsNotConstructed is returned when using an improperly initialized Shop.
var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop or RestoreShop")

// Shop is a storefront owned by a shop-owner user.
//
// Invariants:
//   - id and ownerID are valid UUIDs
//   - name and slug are non-empty; slug is unique at the store
type Shop struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string
	slug    string

	guard guard.ConstructorGuard
}

// NewShop creates a validated Shop.
func NewShop(id, ownerID kernel.UUID, name, slug string) (*Shop, error) {
	s := &Shop{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOwnerID(ownerID),
		s.setName(name),
		s.setSlug(slug),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShop reconstructs a Shop from persistence.
func RestoreShop(id, ownerID kernel.UUID, name, slug string) (*Shop, error) {
	return NewShop(id, ownerID, name, slug)
}

// Validate checks that the Shop was created through a constructor.
func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}

	return s.guard.Validate(ErrShopIsNotConstructed)
}

// ID returns the shop's unique identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// OwnerID returns the identifier of the owning user.
func (s *Shop) OwnerID() kernel.UUID {
	return s.ownerID
}

// Name returns the shop's display name.
func (s *Shop) Name() string {
	return s.name
}

// Slug returns the shop's unique URL slug.
func (s *Shop) Slug() string {
	return s.slug
}

// IsOwnedBy reports whether the given user owns this shop.
func (s *Shop) IsOwnedBy(userID kernel.UUID) bool {
	return s.ownerID.IsEqual(userID)
}

func (s *Shop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shop) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shop) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Shop) setSlug(slug string) error {
	if slug == "" {
		return errs.NewValueIsRequiredError("slug")
	}
	s.slug = slug
	return nil
}
