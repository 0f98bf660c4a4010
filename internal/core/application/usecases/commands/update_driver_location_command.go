package commands

import (
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/guard"
)

// ErrUpdateDriverLocationCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand represents a driver position push for an order
// currently being delivered. Only the latest position is stored; each push
// overwrites the previous one.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	orderType  order.Type
	coordinate kernel.Coordinate

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a command to record a driver position.
// Validates the order id, the order type, and the coordinate.
func NewUpdateDriverLocationCommand(
	orderID kernel.UUID,
	orderType order.Type,
	coordinate kernel.Coordinate,
) (UpdateDriverLocationCommand, error) {
	cmd := UpdateDriverLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderType(orderType),
		cmd.setCoordinate(coordinate),
	); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c UpdateDriverLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns the order family the identifier belongs to.
func (c UpdateDriverLocationCommand) OrderType() order.Type {
	return c.orderType
}

// Coordinate returns the driver position to record.
func (c UpdateDriverLocationCommand) Coordinate() kernel.Coordinate {
	return c.coordinate
}

func (c *UpdateDriverLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDriverLocationCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *UpdateDriverLocationCommand) setCoordinate(coordinate kernel.Coordinate) error {
	if err := coordinate.Validate(); err != nil {
		return err
	}

	c.coordinate = coordinate
	return nil
}
