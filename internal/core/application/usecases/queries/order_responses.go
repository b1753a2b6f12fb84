// Package queries contains read-only operations over the order store.
// Query handlers go straight to the database and return flat response
// structs; they never load aggregates or mutate state.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemResponse is one order line as returned to read clients.
type OrderItemResponse struct {
	ProductID   uuid.UUID `gorm:"column:product_id"   json:"productId"`
	ProductName string    `gorm:"column:product_name" json:"productName"`
	Quantity    int       `gorm:"column:quantity"     json:"quantity"`
	UnitPrice   int64     `gorm:"column:unit_price"   json:"unitPrice"`
	Subtotal    int64     `gorm:"column:subtotal"     json:"subtotal"`
}

// OrderResponse is the read model for a single order, items included.
type OrderResponse struct {
	ID                    uuid.UUID           `gorm:"column:id"                      json:"id"`
	OrderNumber           string              `gorm:"column:order_number"            json:"orderNumber"`
	ClientID              uuid.UUID           `gorm:"column:client_id"               json:"clientId"`
	ShopID                uuid.UUID           `gorm:"column:shop_id"                 json:"shopId"`
	CourierID             *uuid.UUID          `gorm:"column:courier_id"              json:"deliveryPersonId,omitempty"`
	Status                string              `gorm:"column:status"                  json:"status"`
	Street                string              `gorm:"column:street"                  json:"street"`
	Commune               string              `gorm:"column:commune"                 json:"commune"`
	City                  string              `gorm:"column:city"                    json:"city"`
	Reference             string              `gorm:"column:reference"               json:"reference,omitempty"`
	GeoLat                *float64            `gorm:"column:geo_lat"                 json:"lat,omitempty"`
	GeoLng                *float64            `gorm:"column:geo_lng"                 json:"lng,omitempty"`
	TotalAmount           int64               `gorm:"column:total_amount"            json:"totalAmount"`
	DeliveryFee           int64               `gorm:"column:delivery_fee"            json:"deliveryFee"`
	EstimatedDeliveryTime *time.Time          `gorm:"column:estimated_delivery_time" json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time          `gorm:"column:actual_delivery_time"    json:"actualDeliveryTime,omitempty"`
	PaymentMethod         string              `gorm:"column:payment_method"          json:"paymentMethod"`
	PaymentStatus         string              `gorm:"column:payment_status"          json:"paymentStatus"`
	Notes                 string              `gorm:"column:notes"                   json:"notes,omitempty"`
	CreatedAt             time.Time           `gorm:"column:created_at"              json:"createdAt"`
	UpdatedAt             time.Time           `gorm:"column:updated_at"              json:"updatedAt"`
	Items                 []OrderItemResponse `gorm:"-"                              json:"items"`
}

const selectOrderColumns = `
	SELECT
		id, order_number, client_id, shop_id, courier_id, status,
		street, commune, city, reference, geo_lat, geo_lng,
		total_amount, delivery_fee, estimated_delivery_time, actual_delivery_time,
		payment_method, payment_status, notes, created_at, updated_at
	FROM orders
`

// fetchOrders runs a filtered select over the orders table and attaches
// each order's items with a single follow-up query.
func fetchOrders(ctx context.Context, db *gorm.DB, condition string, args ...any) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	if err := db.WithContext(ctx).Raw(selectOrderColumns+condition, args...).Scan(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	type itemRow struct {
		OrderID uuid.UUID `gorm:"column:order_id"`
		OrderItemResponse
	}

	items := make([]itemRow, 0)
	err := db.WithContext(ctx).Raw(`
		SELECT
			order_id, product_id, product_name, quantity, unit_price,
			quantity * unit_price AS subtotal
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, product_name
	`, ids).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]OrderItemResponse, len(orders))
	for _, row := range items {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row.OrderItemResponse)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = make([]OrderItemResponse, 0)
		}
	}

	return orders, nil
}
