package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator installed on the echo instance.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// GeoPointRequest is an optional coordinate pair on the delivery address.
type GeoPointRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// AddressRequest is the delivery address of a new order.
type AddressRequest struct {
	Street    string           `json:"street"    validate:"required"`
	Commune   string           `json:"commune"   validate:"required"`
	City      string           `json:"city"      validate:"required"`
	Reference string           `json:"reference"`
	Geo       *GeoPointRequest `json:"geo"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

// CreateOrderRequest is the body of POST /orders. ClientID is optional
// and only honoured for admins; everyone else orders for themselves.
type CreateOrderRequest struct {
	ClientID      string             `json:"clientId"      validate:"omitempty,uuid"`
	ShopID        string             `json:"shopId"        validate:"required,uuid"`
	Items         []OrderItemRequest `json:"items"         validate:"required,min=1,dive"`
	Address       AddressRequest     `json:"deliveryAddress" validate:"required"`
	DeliveryFee   int64              `json:"deliveryFee"   validate:"min=0"`
	PaymentMethod string             `json:"paymentMethod" validate:"omitempty,oneof=cash card digital_wallet"`
	Notes         string             `json:"notes"`
}

// UpdateStatusRequest is the body of the status transition endpoints.
type UpdateStatusRequest struct {
	Status                string     `json:"status" validate:"required"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
}

// AssignCourierRequest is the body of PATCH /orders/:orderId/assign-delivery.
type AssignCourierRequest struct {
	CourierID string `json:"deliveryPersonId" validate:"required,uuid"`
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(req)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func (r CreateOrderRequest) address() (kernel.Address, error) {
	var geo *kernel.GeoPoint
	if r.Address.Geo != nil {
		geo = &kernel.GeoPoint{Lat: r.Address.Geo.Lat, Lng: r.Address.Geo.Lng}
	}
	return kernel.NewAddress(r.Address.Street, r.Address.Commune, r.Address.City, r.Address.Reference, geo)
}

func (r CreateOrderRequest) lines() ([]commands.OrderLine, error) {
	lines := make([]commands.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}
	return lines, nil
}

func parseStatus(raw string) (order.Status, error) {
	status := order.Status(raw)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}
