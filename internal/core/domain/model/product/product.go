// Package product models the catalog items the order core reads and debits.
// The catalog CRUD itself lives outside the core; orders only need a product's
// identity, its current price for snapshotting, and its stock level.
package product

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is a catalog item belonging to a shop.
//
// Invariants:
//   - id and shopID are valid UUIDs
//   - name is non-empty
//   - price is non-negative (enforced by kernel.Money)
//   - stock is never negative
type Product struct {
	id     kernel.UUID
	shopID kernel.UUID
	name   string
	price  kernel.Money
	stock  int

	guard guard.ConstructorGuard
}

// NewProduct creates a validated Product.
func NewProduct(id, shopID kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	p := &Product{
		price: price,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setShopID(shopID),
		p.setName(name),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(id, shopID kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	return NewProduct(id, shopID, name, price, stock)
}

// Validate checks that the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}

	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// ShopID returns the identifier of the shop that sells this product.
func (p *Product) ShopID() kernel.UUID {
	return p.shopID
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price. Orders snapshot this value at
// creation time; it is never read again for an existing order.
func (p *Product) Price() kernel.Money {
	return p.price
}

// Stock returns the units currently available.
func (p *Product) Stock() int {
	return p.stock
}

// CanFulfill reports whether the product has enough stock for the quantity.
// The authoritative check is the store's conditional decrement; this is the
// domain-level pre-check used to produce a precise error message.
func (p *Product) CanFulfill(quantity int) bool {
	return quantity >= 1 && p.stock >= quantity
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	p.shopID = shopID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
