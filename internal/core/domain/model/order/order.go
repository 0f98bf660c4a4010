package order

import (
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

// Order represents a delivery order in the system. It is the aggregate root
// for the delivery tracking workflow, owned by the remote order store; clients
// hold a read/write cached copy per active delivery session.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a valid order type
//   - Status is always a member of the allowed status whitelist
//   - Delivery and driver locations, when present, are validated coordinates
//   - Can only be created through NewOrder or RestoreOrder
//
// The delivery location may legitimately be absent (older rows predate
// structured locations); a tracking session cannot start on such an order.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderType selects the normal or custom order family
	orderType Type

	// status is the current state in the order lifecycle
	status Status

	// customer is the read model of the order's owner
	customer Customer

	// deliveryAddress is the human-readable destination
	deliveryAddress string

	// deliveryLocation is the destination coordinate (nil if absent)
	deliveryLocation *kernel.Coordinate

	// driverLocation is the latest known driver coordinate (nil until tracked)
	driverLocation *kernel.Coordinate

	// items is the ordered sequence of line items
	items []LineItem

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order in the initial status of its type.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - orderType: normal or custom
//   - customer: read model of the order's owner
//   - deliveryAddress: human-readable destination
//   - deliveryLocation: destination coordinate, nil when the order has none
//   - items: ordered line items (may be empty)
//
// Returns a validation error if the id, type, or a non-nil delivery location
// is invalid.
func NewOrder(
	id kernel.UUID,
	orderType Type,
	customer Customer,
	deliveryAddress string,
	deliveryLocation *kernel.Coordinate,
	items []LineItem,
) (*Order, error) {
	if err := errors.Join(id.Validate(), orderType.Validate()); err != nil {
		return nil, err
	}

	if err := validateOptionalCoordinate("deliveryLocation", deliveryLocation); err != nil {
		return nil, err
	}

	return &Order{
		id:               id,
		orderType:        orderType,
		status:           orderType.InitialStatus(),
		customer:         customer,
		deliveryAddress:  deliveryAddress,
		deliveryLocation: deliveryLocation,
		items:            append([]LineItem(nil), items...),
		isConstructed:    true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence or a store response,
// including its current status and any tracked driver location. Unlike
// NewOrder it accepts any whitelisted status.
func RestoreOrder(
	id kernel.UUID,
	orderType Type,
	status Status,
	customer Customer,
	deliveryAddress string,
	deliveryLocation *kernel.Coordinate,
	driverLocation *kernel.Coordinate,
	items []LineItem,
) (*Order, error) {
	if err := errors.Join(id.Validate(), orderType.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if err := errors.Join(
		validateOptionalCoordinate("deliveryLocation", deliveryLocation),
		validateOptionalCoordinate("driverLocation", driverLocation),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:               id,
		orderType:        orderType,
		status:           status,
		customer:         customer,
		deliveryAddress:  deliveryAddress,
		deliveryLocation: deliveryLocation,
		driverLocation:   driverLocation,
		items:            append([]LineItem(nil), items...),
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderType returns the order family (normal or custom).
func (o *Order) OrderType() Type {
	return o.orderType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Customer returns the read model of the order's owner.
func (o *Order) Customer() Customer {
	return o.customer
}

// DeliveryAddress returns the human-readable destination.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryLocation returns the destination coordinate, or nil when the order
// has no usable destination.
func (o *Order) DeliveryLocation() *kernel.Coordinate {
	return o.deliveryLocation
}

// DriverLocation returns the latest known driver coordinate, or nil before
// tracking produced a sample.
func (o *Order) DriverLocation() *kernel.Coordinate {
	return o.driverLocation
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// ChangeStatus moves the order to target.
//
// Only whitelist membership is enforced (see Status.TransitionTo for why the
// walks are not). The order is not mutated when validation fails, so callers
// persisting the aggregate never write a rejected status.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UpdateDriverLocation records the latest driver coordinate.
// Earlier positions are discarded; no history is retained.
func (o *Order) UpdateDriverLocation(coordinate kernel.Coordinate) error {
	if err := coordinate.Validate(); err != nil {
		return err
	}

	o.driverLocation = &coordinate
	return nil
}

func validateOptionalCoordinate(paramName string, coordinate *kernel.Coordinate) error {
	if coordinate == nil {
		return nil
	}
	if err := coordinate.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return nil
}
