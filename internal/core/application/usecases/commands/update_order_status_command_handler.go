package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves orders through their lifecycle.
// Validates the transition against the state machine, checks the actor's
// authority over the order, and notifies interested rooms after commit.
// Cancelling an order returns the reserved stock in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status transition command.
// The actor must be the owning shop's owner, the assigned courier, or an
// admin. The order is persisted with a version check so two concurrent
// transitions cannot both win.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.authorize(ctx, uow, cmd.Actor(), o); err != nil {
		return nil, err
	}

	if cmd.Next() == order.StatusCancelled {
		if err = h.cancel(ctx, uow, o); err != nil {
			return nil, err
		}
	} else if err = o.TransitionTo(cmd.Next()); err != nil {
		return nil, err
	}

	if estimate := cmd.EstimatedDeliveryTime(); estimate != nil {
		o.SetEstimatedDeliveryTime(*estimate)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notify(ctx, o)

	return o, nil
}

// authorize checks the actor's authority over the order.
// Admins pass unconditionally; shop owners must own the fulfilling shop;
// couriers must be the currently assigned courier.
func (h UpdateOrderStatusCommandHandler) authorize(
	ctx context.Context,
	uow UoW,
	actor user.Principal,
	o *order.Order,
) error {
	if actor.IsAdmin() {
		return nil
	}

	if actor.IsCourier() {
		if courier := o.Courier(); courier != nil && courier.IsEqual(actor.ID) {
			return nil
		}
		return errs.NewForbiddenError("update orders assigned to another courier")
	}

	if actor.Role == user.RoleShopOwner {
		owningShop, err := uow.ShopRepository().Get(ctx, o.ShopID())
		if err != nil {
			return err
		}
		if owningShop.IsOwnedBy(actor.ID) {
			return nil
		}
	}

	return errs.NewForbiddenError("update this order's status")
}

// cancel transitions the order to cancelled and returns every reserved
// line back to the product's stock.
func (h UpdateOrderStatusCommandHandler) cancel(ctx context.Context, uow UoW, o *order.Order) error {
	if err := o.Cancel(); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, item := range o.Items() {
		if err := productRepo.RestoreStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) notify(ctx context.Context, o *order.Order) {
	rooms := []string{ports.RoomClient(o.ClientID())}
	if courier := o.Courier(); courier != nil {
		rooms = append(rooms, ports.RoomCourier(*courier))
	}

	h.publisher.Publish(ctx, ports.Event{
		Name:    ports.EventOrderStatusUpdated,
		Rooms:   rooms,
		Payload: newOrderEventPayload(o, o.Status().Phrase()),
	})
}
