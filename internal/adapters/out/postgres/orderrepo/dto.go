// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by client, shop and courier for the role-scoped listings, with a
// unique constraint on the human-facing order number.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber           string     `gorm:"uniqueIndex;not null"`
	ClientID              uuid.UUID  `gorm:"type:uuid;index;not null"`
	ShopID                uuid.UUID  `gorm:"type:uuid;index;not null"`
	CourierID             *uuid.UUID `gorm:"type:uuid;index"`
	Status                string     `gorm:"index;not null"`
	Address               AddressDTO `gorm:"embedded"`
	TotalAmount           int64      `gorm:"not null"`
	DeliveryFee           int64      `gorm:"not null"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	PaymentMethod         string `gorm:"not null"`
	PaymentStatus         string `gorm:"not null"`
	Notes                 string
	CreatedAt             time.Time `gorm:"index;not null"`
	UpdatedAt             time.Time `gorm:"not null"`
	Version               int64     `gorm:"not null"`
	Items                 []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	Street    string `gorm:"not null"`
	Commune   string `gorm:"not null"`
	City      string `gorm:"not null"`
	Reference string
	GeoLat    *float64 `gorm:"column:geo_lat"`
	GeoLng    *float64 `gorm:"column:geo_lng"`
}

// ItemDTO represents one order line with the price snapshotted at order time.
type ItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	address := AddressDTO{
		Street:    aggregate.Address().Street(),
		Commune:   aggregate.Address().Commune(),
		City:      aggregate.Address().City(),
		Reference: aggregate.Address().Reference(),
	}
	if geo := aggregate.Address().Geo(); geo != nil {
		address.GeoLat = &geo.Lat
		address.GeoLng = &geo.Lng
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Int64(),
		})
	}

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		ClientID:              aggregate.ClientID().Bytes(),
		ShopID:                aggregate.ShopID().Bytes(),
		CourierID:             courierID,
		Status:                aggregate.Status().String(),
		Address:               address,
		TotalAmount:           aggregate.TotalAmount().Int64(),
		DeliveryFee:           aggregate.DeliveryFee().Int64(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		PaymentMethod:         aggregate.PaymentMethod().String(),
		PaymentStatus:         aggregate.PaymentStatus().String(),
		Notes:                 aggregate.Notes(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		Version:               aggregate.Version(),
		Items:                 items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the stored total using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var geo *kernel.GeoPoint
	if dto.Address.GeoLat != nil && dto.Address.GeoLng != nil {
		geo = &kernel.GeoPoint{Lat: *dto.Address.GeoLat, Lng: *dto.Address.GeoLng}
	}
	address, err := kernel.NewAddress(
		dto.Address.Street, dto.Address.Commune, dto.Address.City, dto.Address.Reference, geo)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.ProductName, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                    id,
		OrderNumber:           dto.OrderNumber,
		ClientID:              clientID,
		ShopID:                shopID,
		Items:                 items,
		Status:                order.Status(dto.Status),
		Address:               address,
		CourierID:             courierID,
		TotalAmount:           totalAmount,
		DeliveryFee:           deliveryFee,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		PaymentMethod:         order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:         order.PaymentStatus(dto.PaymentStatus),
		Notes:                 dto.Notes,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		Version:               dto.Version,
	})
}
