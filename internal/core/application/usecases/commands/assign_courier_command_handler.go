package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AssignCourierCommandHandler binds couriers to orders on behalf of shops.
// The courier must be eligible and the order ready; binding the courier and
// entering in_delivery happen in one persisted step.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, publisher)
//	assigned, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
	dispatch   services.CourierDispatch
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		dispatch:   services.NewCourierDispatch(),
	}
}

// Handle processes the assignment command.
// The actor must own the fulfilling shop or be an admin. The courier
// candidate must exist, hold the courier role and be active.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*order.Order, error) {
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

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = h.dispatch.Assign(o, courier); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyAssignment(ctx, h.publisher, o, courier)

	return o, nil
}

func (h AssignCourierCommandHandler) authorize(
	ctx context.Context,
	uow UoW,
	actor user.Principal,
	o *order.Order,
) error {
	if actor.IsAdmin() {
		return nil
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

	return errs.NewForbiddenError("assign couriers to this order")
}

// notifyAssignment emits the post-commit events shared by shop assignment
// and courier self-assignment.
func notifyAssignment(
	ctx context.Context,
	publisher ports.NotificationPublisher,
	o *order.Order,
	courier *user.User,
) {
	payload := newOrderEventPayload(o, o.Status().Phrase())
	payload.CourierName = courier.Name()

	publisher.Publish(ctx, ports.Event{
		Name:    ports.EventOrderAssigned,
		Rooms:   []string{ports.RoomCourier(courier.ID())},
		Payload: payload,
	})

	statusPayload := payload
	statusPayload.Message = fmt.Sprintf("%s, courier %s", o.Status().Phrase(), courier.Name())
	publisher.Publish(ctx, ports.Event{
		Name:    ports.EventOrderStatusUpdated,
		Rooms:   []string{ports.RoomClient(o.ClientID())},
		Payload: statusPayload,
	})
}
