package queries

import (
	"context"
	"database/sql"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryOrderQueryHandler reads the delivery view of an order straight
// from the database, bypassing the aggregate. Catalog orders and custom orders
// live in separate tables; the query's order type selects which pair of tables
// to read.
//
// Example:
//
//	handler := NewGetDeliveryOrderQueryHandler(db)
//	query, _ := NewGetDeliveryOrderQuery(orderID, order.TypeNormal)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to load order: %v", err)
//	    return err
//	}
type GetDeliveryOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryOrderQueryHandler creates a handler for delivery view queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryOrderQueryHandler(db *gorm.DB) GetDeliveryOrderQueryHandler {
	return GetDeliveryOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order's delivery view.
// Returns errs.ObjectNotFoundError when no order exists under the id in the
// requested order family.
func (h GetDeliveryOrderQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryOrderQuery,
) (GetDeliveryOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryOrderQueryResponse{}, err
	}

	var (
		id                                            uuid.UUID
		status, deliveryAddress                       string
		customerID, customerName                      string
		customerPhone, customerEmail                  sql.NullString
		deliveryLat, deliveryLon, driverLat, driverLon sql.NullFloat64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_id,
			customer_name,
			customer_phone,
			customer_email,
			delivery_address,
			delivery_latitude,
			delivery_longitude,
			driver_latitude,
			driver_longitude
		FROM `+ordersTable(query.OrderType())+`
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&status,
		&customerID,
		&customerName,
		&customerPhone,
		&customerEmail,
		&deliveryAddress,
		&deliveryLat,
		&deliveryLon,
		&driverLat,
		&driverLon,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetDeliveryOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
		}
		return GetDeliveryOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveryOrderQueryResponse{}, err
	}

	resp := GetDeliveryOrderQueryResponse{
		ID:              orderID,
		OrderType:       query.OrderType(),
		Status:          order.Status(status),
		CustomerID:      customerID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone.String,
		CustomerEmail:   customerEmail.String,
		DeliveryAddress: deliveryAddress,
	}

	resp.DeliveryLocation, err = coordinateFromColumns(deliveryLat, deliveryLon)
	if err != nil {
		return GetDeliveryOrderQueryResponse{}, err
	}

	resp.DriverLocation, err = coordinateFromColumns(driverLat, driverLon)
	if err != nil {
		return GetDeliveryOrderQueryResponse{}, err
	}

	resp.Items, err = h.loadItems(ctx, query)
	if err != nil {
		return GetDeliveryOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetDeliveryOrderQueryHandler) loadItems(
	ctx context.Context,
	query GetDeliveryOrderQuery,
) ([]DeliveryOrderItemResponse, error) {
	items := make([]DeliveryOrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			quantity,
			unit_price
		FROM `+orderItemsTable(query.OrderType())+`
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item DeliveryOrderItemResponse

		err = rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ordersTable maps an order family to its backing table.
func ordersTable(orderType order.Type) string {
	if orderType == order.TypeCustom {
		return "custom_orders"
	}
	return "orders"
}

// orderItemsTable maps an order family to its line item table.
func orderItemsTable(orderType order.Type) string {
	if orderType == order.TypeCustom {
		return "custom_order_items"
	}
	return "order_items"
}

// coordinateFromColumns rebuilds an optional coordinate from a lat/lon column
// pair. Both columns must be set for a coordinate to exist; a half-set pair is
// corrupt data and fails loudly.
func coordinateFromColumns(lat, lon sql.NullFloat64) (*kernel.Coordinate, error) {
	if !lat.Valid && !lon.Valid {
		return nil, nil //nolint:nilnil //absence of a coordinate is a valid state
	}
	if lat.Valid != lon.Valid {
		return nil, errs.NewValueIsInvalidError("coordinate columns")
	}

	coordinate, err := kernel.NewCoordinate(lat.Float64, lon.Float64)
	if err != nil {
		return nil, err
	}

	return &coordinate, nil
}
