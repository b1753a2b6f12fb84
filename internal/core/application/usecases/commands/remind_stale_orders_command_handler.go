package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// RemindStaleOrdersCommandHandler re-notifies shops about pending orders
// they have not confirmed yet. Runs periodically from the job scheduler.
type RemindStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewRemindStaleOrdersCommandHandler creates a handler for stale-order reminders.
func NewRemindStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) RemindStaleOrdersCommandHandler {
	return RemindStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle finds pending orders older than the threshold and re-emits the
// new-order event to each order's shop room. Returns how many reminders
// were sent.
func (h RemindStaleOrdersCommandHandler) Handle(ctx context.Context, cmd RemindStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-cmd.OlderThan())
	stale, err := uow.OrderRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, o := range stale {
		h.publisher.Publish(ctx, ports.Event{
			Name:    ports.EventNewOrder,
			Rooms:   []string{ports.RoomShop(o.ShopID())},
			Payload: newOrderEventPayload(o, "order is still waiting for confirmation"),
		})
	}

	return len(stale), nil
}
