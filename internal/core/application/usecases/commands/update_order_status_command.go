package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order along its
// lifecycle. Carries the actor so the handler can check who may perform
// the transition.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor                 user.Principal
	orderID               kernel.UUID
	next                  order.Status
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition an order.
// estimatedDeliveryTime is optional and may be nil.
// Returns an error if any validation fails.
func NewUpdateOrderStatusCommand(
	actor user.Principal,
	orderID kernel.UUID,
	next order.Status,
	estimatedDeliveryTime *time.Time,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setNext(next),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// Actor returns the authenticated principal requesting the transition.
func (c UpdateOrderStatusCommand) Actor() user.Principal {
	return c.actor
}

// OrderID returns the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c UpdateOrderStatusCommand) Next() order.Status {
	return c.next
}

// EstimatedDeliveryTime returns the optional delivery estimate, or nil.
func (c UpdateOrderStatusCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

func (c *UpdateOrderStatusCommand) setActor(actor user.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
