package queries

import (
	"context"
	"database/sql"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves in-flight deliveries from the
// database. Only orders in the delivering status are returned; everything
// before dispatch and everything terminal is filtered out.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//	query, _ := NewGetActiveDeliveriesQuery(order.TypeNormal)
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active deliveries: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d drivers on the road\n", len(active))
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders out for delivery.
// Results are sorted by order ID for consistent output.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			delivery_address,
			delivery_latitude,
			delivery_longitude,
			driver_latitude,
			driver_longitude
		FROM `+ordersTable(query.OrderType())+`
		WHERE status = ?
		ORDER BY id
	`, order.StatusDelivering).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetActiveDeliveriesQueryResponse
		var id uuid.UUID
		var deliveryLat, deliveryLon, driverLat, driverLon sql.NullFloat64

		err = rows.Scan(
			&id,
			&delivery.CustomerName,
			&delivery.DeliveryAddress,
			&deliveryLat,
			&deliveryLon,
			&driverLat,
			&driverLon,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery.ID = orderID

		delivery.DeliveryLocation, err = coordinateFromColumns(deliveryLat, deliveryLon)
		if err != nil {
			return nil, err
		}

		delivery.DriverLocation, err = coordinateFromColumns(driverLat, driverLon)
		if err != nil {
			return nil, err
		}

		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
