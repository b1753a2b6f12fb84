package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps the error taxonomy to transport status codes. Anything
// unclassified counts as an internal failure.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError converts a use case error into a JSON error response.
// Internal failures are logged server-side and surfaced with a generic
// message so persistence details never leak to clients.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = "internal server error"
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}

// orderToResponse flattens a freshly written aggregate into the same
// shape the read side returns, so clients see one order model.
func orderToResponse(o *order.Order) queries.OrderResponse {
	items := make([]queries.OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, queries.OrderItemResponse{
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Int64(),
			Subtotal:    item.Subtotal().Int64(),
		})
	}

	var courierID *uuid.UUID
	if courier := o.Courier(); courier != nil {
		id := courier.Bytes()
		courierID = &id
	}

	var lat, lng *float64
	if geo := o.Address().Geo(); geo != nil {
		lat, lng = &geo.Lat, &geo.Lng
	}

	return queries.OrderResponse{
		ID:                    o.ID().Bytes(),
		OrderNumber:           o.OrderNumber(),
		ClientID:              o.ClientID().Bytes(),
		ShopID:                o.ShopID().Bytes(),
		CourierID:             courierID,
		Status:                o.Status().String(),
		Street:                o.Address().Street(),
		Commune:               o.Address().Commune(),
		City:                  o.Address().City(),
		Reference:             o.Address().Reference(),
		GeoLat:                lat,
		GeoLng:                lng,
		TotalAmount:           o.TotalAmount().Int64(),
		DeliveryFee:           o.DeliveryFee().Int64(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		PaymentMethod:         o.PaymentMethod().String(),
		PaymentStatus:         o.PaymentStatus().String(),
		Notes:                 o.Notes(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
	}
}
