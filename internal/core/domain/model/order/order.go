package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCourierRequired is returned when attempting to move an order into
	// delivery without a courier bound to it.
	ErrCourierRequired = errors.New("a courier must be assigned before delivery starts")
)

// Order is the central aggregate of the marketplace: a client's purchase from
// a shop, moving through the delivery workflow.
//
// Order follows these invariants:
//   - items is non-empty; every line quantity is >= 1
//   - totalAmount equals the sum of line subtotals, computed once at creation
//     from price snapshots and never recalculated afterwards
//   - status only moves along the edges of the state machine in Status
//   - courierID is set if and only if the status has reached in_delivery;
//     binding a courier and entering in_delivery happen in the same step
//   - orderNumber is unique across the store for the lifetime of the system
//   - client, shop, and delivery address are immutable after creation
//
// The struct uses private fields so every mutation goes through a validated
// method. The version field supports the store's optimistic concurrency check.
type Order struct {
	id          kernel.UUID
	orderNumber string
	clientID    kernel.UUID
	shopID      kernel.UUID
	items       []Item
	status      Status
	address     kernel.Address
	courierID   *kernel.UUID

	totalAmount kernel.Money
	deliveryFee kernel.Money

	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	notes string

	createdAt time.Time
	updatedAt time.Time
	version   int64

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in pending status with a freshly generated
// order number. The total is computed here, once, from the item snapshots.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - clientID: the ordering user (immutable afterwards)
//   - shopID: the fulfilling shop (immutable afterwards)
//   - items: order lines with price snapshots (must be non-empty, all valid)
//   - address: delivery destination (must be constructed)
//   - deliveryFee: non-negative fee, zero when the shop delivers for free
//   - paymentMethod: how the client intends to pay
//   - notes: optional free text for the shop or courier
//
// Example:
//
//	item, _ := order.NewItem(productID, "Pan Amasado", 2, price)
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:            kernel.NewUUID(),
//	    ClientID:      clientID,
//	    ShopID:        shopID,
//	    Items:         []order.Item{item},
//	    Address:       addr,
//	    PaymentMethod: order.PaymentMethodCash,
//	})
func NewOrder(params NewOrderParams) (*Order, error) {
	now := time.Now()

	o := &Order{
		status:        StatusPending,
		orderNumber:   NextOrderNumber(now),
		paymentStatus: PaymentStatusPending,
		notes:         params.Notes,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	paymentMethod := params.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentMethodCash
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setClientID(params.ClientID),
		o.setShopID(params.ShopID),
		o.setItems(params.Items),
		o.setAddress(params.Address),
		o.setDeliveryFee(params.DeliveryFee),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewOrderParams carries the inputs for NewOrder.
type NewOrderParams struct {
	ID            kernel.UUID
	ClientID      kernel.UUID
	ShopID        kernel.UUID
	Items         []Item
	Address       kernel.Address
	DeliveryFee   kernel.Money
	PaymentMethod PaymentMethod
	Notes         string
}

// RestoreOrderParams carries the full persisted state for RestoreOrder.
type RestoreOrderParams struct {
	ID                    kernel.UUID
	OrderNumber           string
	ClientID              kernel.UUID
	ShopID                kernel.UUID
	Items                 []Item
	Status                Status
	Address               kernel.Address
	CourierID             *kernel.UUID
	TotalAmount           kernel.Money
	DeliveryFee           kernel.Money
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int64
}

// RestoreOrder reconstructs an Order from persistence.
// Unlike NewOrder it restores the stored total instead of recomputing it:
// historical totals reflect the prices at order time, not the current catalog.
// The consistency between status and courier binding is re-validated.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		totalAmount:           params.TotalAmount,
		estimatedDeliveryTime: params.EstimatedDeliveryTime,
		actualDeliveryTime:    params.ActualDeliveryTime,
		notes:                 params.Notes,
		createdAt:             params.CreatedAt,
		updatedAt:             params.UpdatedAt,
		version:               params.Version,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setClientID(params.ClientID),
		o.setShopID(params.ShopID),
		o.setItems(params.Items),
		o.setStatus(params.Status),
		o.setAddress(params.Address),
		o.setDeliveryFee(params.DeliveryFee),
		o.setPaymentMethod(params.PaymentMethod),
		o.setPaymentStatus(params.PaymentStatus),
		o.setCourierID(params.CourierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}

	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order code.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ClientID returns the ordering user's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ShopID returns the fulfilling shop's identifier.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Address returns the delivery destination.
func (o *Order) Address() kernel.Address {
	return o.address
}

// Courier returns the assigned courier's identifier, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}

	id := *o.courierID
	return &id
}

// TotalAmount returns the total recorded at creation time.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// EstimatedDeliveryTime returns the shop's delivery estimate, or nil.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns when the order was delivered, or nil.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// PaymentMethod returns how the client intends to pay.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the recorded payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Notes returns the optional free-text note.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency counter.
// The store bumps it on every successful update.
func (o *Order) Version() int64 {
	return o.version
}

// IsTakeable reports whether a courier may take this order directly:
// it must be ready for delivery and not yet assigned.
func (o *Order) IsTakeable() bool {
	return o.status == StatusReady && o.courierID == nil
}

// TransitionTo moves the order to the next lifecycle state.
//
// Business rules enforced here:
//   - the edge must exist in the state machine
//   - in_delivery cannot be entered without a courier (use Assign for that edge)
//   - reaching delivered records the actual delivery time
//
// Returns an error when the transition is not allowed; the order is unchanged
// in that case.
func (o *Order) TransitionTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if newStatus == StatusInDelivery && o.courierID == nil {
		return errs.NewValueIsInvalidErrorWithCause("status", ErrCourierRequired)
	}

	o.status = newStatus
	if newStatus == StatusDelivered {
		now := time.Now()
		o.actualDeliveryTime = &now
	}

	o.touch()
	return nil
}

// Assign binds a courier to the order and moves it into delivery.
// Binding and the status change are one step so no observer ever sees an
// in_delivery order without a courier, or a bound courier before delivery.
//
// The order must be ready and unassigned; the caller is responsible for
// checking the courier's eligibility (role and availability).
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.IsTakeable() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot be assigned", o.status))
	}

	newStatus, err := o.status.TransitionTo(StatusInDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.touch()
	return nil
}

// Cancel aborts the order. Allowed only while the shop still controls it
// (pending, confirmed, preparing); the caller restores product stock.
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// SetEstimatedDeliveryTime records the shop's delivery estimate.
func (o *Order) SetEstimatedDeliveryTime(t time.Time) {
	o.estimatedDeliveryTime = &t
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	o.shopID = shopID
	return nil
}

// setItems validates the lines and, for new orders, accumulates the total.
// RestoreOrder overwrites the total afterwards with the persisted value.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := kernel.Money(0)
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total = total.Add(item.Subtotal())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)

	if o.totalAmount == 0 {
		o.totalAmount = total
	}

	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setDeliveryFee(fee kernel.Money) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%d is negative", fee.Int64()))
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

// setCourierID restores the courier binding, re-validating the invariant that
// a courier is present exactly when the order has reached in_delivery.
func (o *Order) setCourierID(courierID *kernel.UUID) error {
	bound := courierID != nil
	inDeliveryOrLater := o.status == StatusInDelivery || o.status == StatusDelivered

	if bound && !inDeliveryOrLater {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPerson",
			fmt.Errorf("%s order cannot have a courier", o.status))
	}
	if !bound && inDeliveryOrLater {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPerson",
			fmt.Errorf("%s order must have a courier", o.status))
	}

	if bound {
		if err := courierID.Validate(); err != nil {
			return err
		}
		id := *courierID
		o.courierID = &id
	}

	return nil
}
