package queries

import (
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/guard"
)

var ErrGetDeliveryOrderQueryIsNotConstructed = errors.New(
	"GetDeliveryOrderQuery must be created via NewGetDeliveryOrderQuery constructor",
)

// GetDeliveryOrderQuery retrieves the full delivery view of a single order:
// status, customer contact details, destination, last known driver position,
// and line items. This is the read model a driver screen renders before and
// during an active delivery.
//
// Example:
//
//	query, err := NewGetDeliveryOrderQuery(orderID, order.TypeNormal)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load delivery order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", view.ID, view.Status)
type GetDeliveryOrderQuery struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	orderType order.Type

	guard guard.ConstructorGuard
}

// NewGetDeliveryOrderQuery creates a query for a single order's delivery view.
// Validates the order id and the order type.
func NewGetDeliveryOrderQuery(orderID kernel.UUID, orderType order.Type) (GetDeliveryOrderQuery, error) {
	query := GetDeliveryOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setOrderType(orderType),
	); err != nil {
		return GetDeliveryOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryOrderQueryIsNotConstructed if validation fails.
func (q GetDeliveryOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetDeliveryOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderType returns the order family the identifier belongs to.
func (q GetDeliveryOrderQuery) OrderType() order.Type {
	return q.orderType
}

func (q *GetDeliveryOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetDeliveryOrderQuery) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	q.orderType = orderType
	return nil
}

// GetDeliveryOrderQueryResponse is the delivery view of one order.
// DeliveryLocation is nil when the destination has not been geocoded yet;
// DriverLocation is nil until the first driver position push.
type GetDeliveryOrderQueryResponse struct {
	ID               kernel.UUID
	OrderType        order.Type
	Status           order.Status
	CustomerID       string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	DeliveryAddress  string
	DeliveryLocation *kernel.Coordinate
	DriverLocation   *kernel.Coordinate
	Items            []DeliveryOrderItemResponse
}

// DeliveryOrderItemResponse is one line item of the delivery view.
// UnitPrice is in centavos.
type DeliveryOrderItemResponse struct {
	ID        string
	Name      string
	Quantity  int
	UnitPrice int64
}
