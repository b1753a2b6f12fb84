package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// TakeOrderCommandHandler lets couriers claim unassigned ready orders.
// The actor's active-courier status is verified against the user store,
// not just the token's role claim.
type TakeOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
	dispatch   services.CourierDispatch
}

// NewTakeOrderCommandHandler creates a handler for courier self-assignment.
func NewTakeOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		dispatch:   services.NewCourierDispatch(),
	}
}

// Handle processes the self-assignment command.
// The order must be ready and unassigned; first courier to commit wins,
// later attempts fail on the order's version check.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Actor().IsCourier() {
		return nil, errs.NewForbiddenError("take orders")
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

	courier, err := uow.UserRepository().Get(ctx, cmd.Actor().ID)
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
