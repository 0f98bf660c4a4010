// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// Catalog orders and custom orders share one schema but live in separate table
// pairs (orders/order_items and custom_orders/custom_order_items); the order
// type selects the pair at query time.
package orderrepo

import (
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The destination coordinate columns are nullable: an order whose address has
// not been geocoded yet has no delivery_latitude/delivery_longitude. The driver
// coordinate columns stay null until the first position push of a delivery run.
type OrderDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status            string      `gorm:"index"`
	Customer          CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	DeliveryAddress   string
	DeliveryLatitude  *float64
	DeliveryLongitude *float64
	DriverLatitude    *float64
	DriverLongitude   *float64
}

// CustomerDTO represents the embedded customer contact columns within the order table.
type CustomerDTO struct {
	ID    string
	Name  string
	Phone string
	Email string
}

// ItemDTO represents one line item row. Line items are immutable once the
// order is placed; the repository writes them on Add and never on Update.
type ItemDTO struct {
	ID        string    `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Quantity  int
	UnitPrice int64
}

// ordersTableName maps an order family to its backing table.
func ordersTableName(orderType order.Type) string {
	if orderType == order.TypeCustom {
		return "custom_orders"
	}
	return "orders"
}

// orderItemsTableName maps an order family to its line item table.
func orderItemsTableName(orderType order.Type) string {
	if orderType == order.TypeCustom {
		return "custom_order_items"
	}
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO) {
	dto := OrderDTO{
		ID:     aggregate.ID().Bytes(),
		Status: string(aggregate.Status()),
		Customer: CustomerDTO{
			ID:    aggregate.Customer().ID,
			Name:  aggregate.Customer().Name,
			Phone: aggregate.Customer().Phone,
			Email: aggregate.Customer().Email,
		},
		DeliveryAddress: aggregate.DeliveryAddress(),
	}

	dto.DeliveryLatitude, dto.DeliveryLongitude = coordinateColumns(aggregate.DeliveryLocation())
	dto.DriverLatitude, dto.DriverLongitude = coordinateColumns(aggregate.DriverLocation())

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID,
			OrderID:   aggregate.ID().Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return dto, items
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO, orderType order.Type) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := coordinateFromColumns(dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	driverLocation, err := coordinateFromColumns(dto.DriverLatitude, dto.DriverLongitude)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, item := range itemDTOs {
		items = append(items, order.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return order.RestoreOrder(
		id,
		orderType,
		order.Status(dto.Status),
		order.Customer{
			ID:    dto.Customer.ID,
			Name:  dto.Customer.Name,
			Phone: dto.Customer.Phone,
			Email: dto.Customer.Email,
		},
		dto.DeliveryAddress,
		deliveryLocation,
		driverLocation,
		items,
	)
}

// coordinateColumns splits an optional coordinate into a nullable lat/lon column pair.
func coordinateColumns(coordinate *kernel.Coordinate) (*float64, *float64) {
	if coordinate == nil {
		return nil, nil
	}

	lat := coordinate.Latitude()
	lon := coordinate.Longitude()
	return &lat, &lon
}

// coordinateFromColumns rebuilds an optional coordinate from a nullable column
// pair. A half-set pair is corrupt data and fails loudly.
func coordinateFromColumns(lat, lon *float64) (*kernel.Coordinate, error) {
	if lat == nil && lon == nil {
		return nil, nil //nolint:nilnil //absence of a coordinate is a valid state
	}
	if (lat == nil) != (lon == nil) {
		return nil, errs.NewValueIsInvalidError("coordinate columns")
	}

	coordinate, err := kernel.NewCoordinate(*lat, *lon)
	if err != nil {
		return nil, err
	}

	return &coordinate, nil
}
