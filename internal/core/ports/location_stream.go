package ports

import (
	"context"

	"deliverytracking/internal/core/domain/model/kernel"
)

// LocationStreamer starts device position tracking for a delivery session.
// The stream it produces is lazy, infinite and non-restartable: samples flow
// into onSample until the subscription is cancelled, and a cancelled
// subscription never resumes.
type LocationStreamer interface {
	// StartTracking requests location permission and begins streaming.
	// Returns ErrPermissionDenied when the device refuses access; this must
	// reach the caller, never be swallowed.
	//
	// onSample is invoked from the adapter's delivery goroutine; callers that
	// need serialization do their own.
	StartTracking(ctx context.Context, onSample func(kernel.PositionSample)) (Subscription, error)
}

// Subscription is a handle over an active location stream.
type Subscription interface {
	// Cancel stops the stream synchronously. It is idempotent: calling it a
	// second time is a no-op and never touches the platform API again.
	Cancel()
}
