package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrLineQuantityIsInvalid = errors.New("line quantity must be greater than 0")
)

// OrderLine is one requested product within a create-order command.
// Prices are not part of the request; they are snapshotted from the
// catalog when the order is created.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a client's request to place an order with a shop.
// Encapsulates the requested lines, the delivery address and payment details.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, clientID, shopID, lines, address,
//	    order.PaymentMethodCash, "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor         user.Principal
	clientID      kernel.UUID
	shopID        kernel.UUID
	lines         []OrderLine
	address       kernel.Address
	deliveryFee   kernel.Money
	paymentMethod order.PaymentMethod
	notes         string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// clientID names the client the order belongs to; for non-admin actors it
// must equal the actor's own id (enforced by the handler).
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	actor user.Principal,
	clientID kernel.UUID,
	shopID kernel.UUID,
	lines []OrderLine,
	address kernel.Address,
	deliveryFee kernel.Money,
	paymentMethod order.PaymentMethod,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setClientID(clientID),
		cmd.setShopID(shopID),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the authenticated principal placing the order.
func (c CreateOrderCommand) Actor() user.Principal {
	return c.actor
}

// ClientID returns the client the order belongs to.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ShopID returns the shop the order is placed with.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Address returns the delivery destination.
func (c CreateOrderCommand) Address() kernel.Address {
	return c.address
}

// DeliveryFee returns the delivery fee charged on top of the items total.
func (c CreateOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Notes returns free-form delivery instructions, possibly empty.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return ErrLineQuantityIsInvalid
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee kernel.Money) error {
	validated, err := kernel.NewMoney(fee.Int64())
	if err != nil {
		return err
	}

	c.deliveryFee = validated
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if method == "" {
		method = order.PaymentMethodCash
	}
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
