package queries

import (
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves all orders of one family currently out
// for delivery. Backs the dispatch overview: which orders have a driver on
// the road and where those drivers last reported from.
type GetActiveDeliveriesQuery struct { //nolint:recvcheck //using for validation
	orderType order.Type

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for in-flight deliveries of the
// given order family.
func NewGetActiveDeliveriesQuery(orderType order.Type) (GetActiveDeliveriesQuery, error) {
	query := GetActiveDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderType(orderType); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveDeliveriesQueryIsNotConstructed if validation fails.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// OrderType returns the order family to scan for active deliveries.
func (q GetActiveDeliveriesQuery) OrderType() order.Type {
	return q.orderType
}

func (q *GetActiveDeliveriesQuery) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	q.orderType = orderType
	return nil
}

// GetActiveDeliveriesQueryResponse is one in-flight delivery.
// DriverLocation is nil until the driver's first position push.
type GetActiveDeliveriesQueryResponse struct {
	ID               kernel.UUID
	CustomerName     string
	DeliveryAddress  string
	DeliveryLocation *kernel.Coordinate
	DriverLocation   *kernel.Coordinate
}
