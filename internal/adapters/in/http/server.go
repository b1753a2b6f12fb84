// Package http is the REST entry point of the order service. Handlers
// translate requests into commands and queries, and the error taxonomy
// into transport status codes; all authorization lives in the use cases.
package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Server holds the use case handlers behind the order endpoints.
type Server struct {
	logger *slog.Logger

	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	takeOrderHandler         commands.TakeOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getMyOrdersHandler       queries.GetMyOrdersQueryHandler
	getShopOrdersHandler     queries.GetShopOrdersQueryHandler
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(
	logger *slog.Logger,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getMyOrdersHandler queries.GetMyOrdersQueryHandler,
	getShopOrdersHandler queries.GetShopOrdersQueryHandler,
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler,
) *Server {
	return &Server{
		logger:                   logger.With("component", "http_server"),
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		assignCourierHandler:     assignCourierHandler,
		takeOrderHandler:         takeOrderHandler,
		getOrderHandler:          getOrderHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getMyOrdersHandler:       getMyOrdersHandler,
		getShopOrdersHandler:     getShopOrdersHandler,
		getCourierOrdersHandler:  getCourierOrdersHandler,
	}
}

// RegisterRoutes mounts the order endpoints on the group. The group is
// expected to carry the bearer auth middleware.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.GetAllOrders)
	g.GET("/orders/my-orders", s.GetMyOrders)
	g.GET("/orders/shop/:shopId", s.GetShopOrders)
	g.GET("/orders/delivery-person/:id", s.GetCourierOrders)
	g.PATCH("/orders/take-order/:orderId", s.TakeOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	g.PATCH("/orders/:orderId/assign-delivery", s.AssignCourier)
	g.PATCH("/orders/:orderId/delivery-status", s.UpdateDeliveryStatus)
}

// CreateOrder handles POST /orders.
//
//	@Summary		Place an order
//	@Description	Creates an order with price snapshots of the requested products and decrements their stock.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"order to place"
//	@Success		201		{object}	queries.OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	clientID := principal.ID
	if req.ClientID != "" {
		id, err := kernel.UUIDFromString(req.ClientID)
		if err != nil {
			return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("clientId", err))
		}
		clientID = id
	}

	shopID, err := kernel.UUIDFromString(req.ShopID)
	if err != nil {
		return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("shopId", err))
	}

	address, err := req.address()
	if err != nil {
		return writeError(c, s.logger, err)
	}

	lines, err := req.lines()
	if err != nil {
		return writeError(c, s.logger, err)
	}

	fee, err := kernel.NewMoney(req.DeliveryFee)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewCreateOrderCommand(principal, clientID, shopID, lines,
		address, fee, order.PaymentMethod(req.PaymentMethod), req.Notes)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, orderToResponse(created))
}

// GetAllOrders handles GET /orders.
//
//	@Summary	List every order (admin)
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		queries.OrderResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders [get]
func (s *Server) GetAllOrders(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetAllOrdersQuery(principal)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	orders, err := s.getAllOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetMyOrders handles GET /orders/my-orders.
//
//	@Summary	List the caller's own orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	queries.OrderResponse
//	@Security	BearerAuth
//	@Router		/orders/my-orders [get]
func (s *Server) GetMyOrders(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetMyOrdersQuery(principal)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	orders, err := s.getMyOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetShopOrders handles GET /orders/shop/:shopId.
//
//	@Summary	List a shop's incoming orders
//	@Tags		orders
//	@Produce	json
//	@Param		shopId	path		string	true	"shop id"
//	@Success	200		{array}		queries.OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/shop/{shopId} [get]
func (s *Server) GetShopOrders(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewGetShopOrdersQuery(principal, shopID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	orders, err := s.getShopOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetCourierOrders handles GET /orders/delivery-person/:id.
//
//	@Summary	List a courier's assigned orders
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"courier id"
//	@Success	200	{array}		queries.OrderResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/delivery-person/{id} [get]
func (s *Server) GetCourierOrders(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	courierID, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewGetCourierOrdersQuery(principal, courierID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	orders, err := s.getCourierOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:orderId.
//
//	@Summary	Fetch one order
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path		string	true	"order id"
//	@Success	200		{object}	queries.OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/{orderId} [get]
func (s *Server) GetOrder(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	found, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, found)
}

// UpdateOrderStatus handles PATCH /orders/:orderId/status.
//
//	@Summary		Transition an order
//	@Description	Moves the order along its lifecycle. Cancelling restores the reserved stock.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			orderId	path		string				true	"order id"
//	@Param			request	body		UpdateStatusRequest	true	"target status"
//	@Success		200		{object}	queries.OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{orderId}/status [patch]
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	return s.transition(c, false)
}

// UpdateDeliveryStatus handles PATCH /orders/:orderId/delivery-status.
// Same transition machinery as UpdateOrderStatus, restricted to couriers
// advancing their own delivery.
//
//	@Summary	Advance a delivery (courier)
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		orderId	path		string				true	"order id"
//	@Param		request	body		UpdateStatusRequest	true	"target status"
//	@Success	200		{object}	queries.OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/{orderId}/delivery-status [patch]
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	return s.transition(c, true)
}

func (s *Server) transition(c echo.Context, courierOnly bool) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	if courierOnly && !principal.IsCourier() && !principal.IsAdmin() {
		return writeError(c, s.logger, errs.NewForbiddenError("advance deliveries"))
	}

	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(principal, orderID, status, req.EstimatedDeliveryTime)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orderToResponse(updated))
}

// AssignCourier handles PATCH /orders/:orderId/assign-delivery.
//
//	@Summary		Assign a courier to an order
//	@Description	Sets the courier and moves the order to in_delivery in one step.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			orderId	path		string					true	"order id"
//	@Param			request	body		AssignCourierRequest	true	"courier to assign"
//	@Success		200		{object}	queries.OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{orderId}/assign-delivery [patch]
func (s *Server) AssignCourier(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req AssignCourierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("deliveryPersonId", err))
	}

	cmd, err := commands.NewAssignCourierCommand(principal, orderID, courierID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	updated, err := s.assignCourierHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orderToResponse(updated))
}

// TakeOrder handles PATCH /orders/take-order/:orderId.
//
//	@Summary		Take an unassigned order (courier)
//	@Description	Self-assigns the calling courier to a ready, unassigned order.
//	@Tags			orders
//	@Produce		json
//	@Param			orderId	path		string	true	"order id"
//	@Success		200		{object}	queries.OrderResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/take-order/{orderId} [patch]
func (s *Server) TakeOrder(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewTakeOrderCommand(principal, orderID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	taken, err := s.takeOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, orderToResponse(taken))
}
