package ports

import (
	"context"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
)

// OrderStore is the client-side contract of the remote order store consumed
// by delivery sessions. Implementations talk HTTP/JSON to the store and
// forward an opaque admin identity with every request without inspecting it.
//
// All operations are bounded: implementations apply a reasonable timeout and
// surface expiry as a NetworkFailureError. No operation retries on its own;
// every retry in the delivery workflow is user-initiated.
type OrderStore interface {
	// GetOrder fetches the full order, including customer, delivery location
	// and any previously stored driver location.
	// Returns an ObjectNotFoundError when the store answers 404.
	GetOrder(ctx context.Context, id kernel.UUID, orderType order.Type) (*order.Order, error)

	// PushDriverLocation uploads the latest driver coordinate.
	// Callers treat failures as recoverable: a lost push never ends a session.
	PushDriverLocation(ctx context.Context, id kernel.UUID, orderType order.Type, coordinate kernel.Coordinate) error

	// UpdateStatus asks the store to move the order to status.
	// Returns an InvalidStatusError when the store rejects the value (400).
	UpdateStatus(ctx context.Context, id kernel.UUID, orderType order.Type, status order.Status) error
}
