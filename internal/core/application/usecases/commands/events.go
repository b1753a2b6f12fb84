package commands

import (
	"time"

	"marketplace/internal/core/domain/model/order"
)

// orderEventItem is the wire representation of one order line in a notification.
type orderEventItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
}

// orderEventPayload is the notification body shared by all order events.
// Carries the populated order plus an optional human readable message.
type orderEventPayload struct {
	OrderID               string           `json:"orderId"`
	OrderNumber           string           `json:"orderNumber"`
	ClientID              string           `json:"clientId"`
	ShopID                string           `json:"shopId"`
	CourierID             *string          `json:"deliveryPersonId,omitempty"`
	CourierName           string           `json:"deliveryPersonName,omitempty"`
	Status                string           `json:"status"`
	Items                 []orderEventItem `json:"items"`
	TotalAmount           int64            `json:"totalAmount"`
	DeliveryFee           int64            `json:"deliveryFee"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time       `json:"actualDeliveryTime,omitempty"`
	Message               string           `json:"message,omitempty"`
}

func newOrderEventPayload(o *order.Order, message string) orderEventPayload {
	items := make([]orderEventItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderEventItem{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Int64(),
			Subtotal:    item.Subtotal().Int64(),
		})
	}

	payload := orderEventPayload{
		OrderID:               o.ID().String(),
		OrderNumber:           o.OrderNumber(),
		ClientID:              o.ClientID().String(),
		ShopID:                o.ShopID().String(),
		Status:                o.Status().String(),
		Items:                 items,
		TotalAmount:           o.TotalAmount().Int64(),
		DeliveryFee:           o.DeliveryFee().Int64(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		Message:               message,
	}

	if courier := o.Courier(); courier != nil {
		id := courier.String()
		payload.CourierID = &id
	}

	return payload
}
