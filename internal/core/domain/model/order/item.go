package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a product reference, the quantity ordered,
// and the unit price captured at order time.
//
// The price and product name are snapshots. They are recorded once when the
// order is created and never recomputed from the live catalog, so historical
// totals stay stable even if catalog prices change later.
type Item struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
//
// Parameters:
//   - productID: the catalog product (must be a valid UUID)
//   - productName: display name snapshot (must be non-empty)
//   - quantity: units ordered (must be >= 1)
//   - unitPrice: price snapshot in minor units (non-negative by construction)
func NewItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog product reference.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity x unit price for this line.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
