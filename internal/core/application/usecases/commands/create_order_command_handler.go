package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Snapshots catalog prices into the order, decrements stock atomically and
// notifies the shop and the client once the order is committed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	fmt.Printf("order %s placed", placed.OrderNumber())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and a publisher
// for post-commit notifications.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
// Verifies the shop and every product exist, snapshots unit prices, and
// decrements stock conditionally so concurrent orders can never oversell.
// Any failed lookup or stock check aborts the whole transaction; no partial
// order is persisted and no stock is lost.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.IsAdmin() && actor.Role != user.RoleClient {
		return nil, errs.NewForbiddenError("create orders")
	}
	if !actor.IsAdmin() && !actor.ID.IsEqual(cmd.ClientID()) {
		return nil, errs.NewForbiddenError("create orders for another client")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shopRepo := uow.ShopRepository()
	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	placedShop, err := shopRepo.Get(ctx, cmd.ShopID())
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, err := h.reserveLine(ctx, productRepo, cmd.ShopID(), line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	placed, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		ClientID:      cmd.ClientID(),
		ShopID:        placedShop.ID(),
		Items:         items,
		Address:       cmd.Address(),
		DeliveryFee:   cmd.DeliveryFee(),
		PaymentMethod: cmd.PaymentMethod(),
		Notes:         cmd.Notes(),
	})
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	payload := newOrderEventPayload(placed, placed.Status().Phrase())
	h.publisher.Publish(ctx, ports.Event{
		Name:    ports.EventNewOrder,
		Rooms:   []string{ports.RoomShop(placed.ShopID())},
		Payload: payload,
	})
	h.publisher.Publish(ctx, ports.Event{
		Name:    ports.EventOrderCreated,
		Rooms:   []string{ports.RoomClient(placed.ClientID())},
		Payload: payload,
	})

	return placed, nil
}

// reserveLine snapshots the product's current price into an order item and
// decrements its stock. The conditional decrement is the authoritative check;
// the pre-check only exists to report the available quantity.
func (h CreateOrderCommandHandler) reserveLine(
	ctx context.Context,
	productRepo ports.ProductRepository,
	shopID kernel.UUID,
	line OrderLine,
) (order.Item, error) {
	prod, err := productRepo.Get(ctx, line.ProductID)
	if err != nil {
		return order.Item{}, err
	}

	if !prod.ShopID().IsEqual(shopID) {
		return order.Item{}, errs.NewValueIsInvalidErrorWithCause("items",
			fmt.Errorf("product %q does not belong to the shop", prod.Name()))
	}

	if !prod.CanFulfill(line.Quantity) {
		return order.Item{}, errs.NewInsufficientStockError(prod.Name(), line.Quantity, prod.Stock())
	}

	if err = productRepo.DecrementStock(ctx, prod.ID(), line.Quantity); err != nil {
		return order.Item{}, err
	}

	return order.NewItem(prod.ID(), prod.Name(), line.Quantity, prod.Price())
}
