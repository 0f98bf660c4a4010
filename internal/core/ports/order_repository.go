package ports

import (
	"context"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Normal and custom orders live in separate tables, so every operation takes
// the order type alongside the identifier.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its status and tracked driver location.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by identifier and order type.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID, orderType order.Type) (*order.Order, error)

	// GetAllInDeliveringStatus retrieves all orders of the given type that are
	// currently out with a driver. Used by monitoring and sweep workflows.
	GetAllInDeliveringStatus(ctx context.Context, orderType order.Type) ([]*order.Order, error)
}
