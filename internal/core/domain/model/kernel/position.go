package kernel

import (
	"fmt"
	"time"

	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/guard"
)

// ErrPositionSampleIsNotConstructed is returned when attempting to use an
// improperly initialized PositionSample.
var ErrPositionSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"position sample must be created via NewPositionSample constructor")

// PositionSample is a single reading from the device location stream: the
// coordinate, the reported accuracy radius, and the time of the fix.
//
// Samples are immutable value objects. Only the latest sample matters to the
// delivery workflow; no history is retained anywhere.
type PositionSample struct { //nolint:recvcheck //using for validation
	coordinate     Coordinate
	accuracyMeters float64
	timestamp      time.Time

	guard guard.ConstructorGuard
}

// NewPositionSample creates a PositionSample from a validated coordinate,
// an accuracy radius in meters (must not be negative) and the fix timestamp
// (must not be zero).
func NewPositionSample(coordinate Coordinate, accuracyMeters float64, timestamp time.Time) (PositionSample, error) {
	if err := coordinate.Validate(); err != nil {
		return PositionSample{}, err
	}

	if accuracyMeters < 0 {
		return PositionSample{}, errs.NewValueIsInvalidError("accuracyMeters")
	}

	if timestamp.IsZero() {
		return PositionSample{}, errs.NewValueIsRequiredError("timestamp")
	}

	return PositionSample{
		coordinate:     coordinate,
		accuracyMeters: accuracyMeters,
		timestamp:      timestamp,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the PositionSample was properly constructed.
func (p PositionSample) Validate() error {
	return p.guard.Validate(ErrPositionSampleIsNotConstructed)
}

// Coordinate returns the position of the fix.
func (p PositionSample) Coordinate() Coordinate {
	return p.coordinate
}

// AccuracyMeters returns the reported accuracy radius of the fix in meters.
func (p PositionSample) AccuracyMeters() float64 {
	return p.accuracyMeters
}

// Timestamp returns the time the fix was taken.
func (p PositionSample) Timestamp() time.Time {
	return p.timestamp
}

// String returns a human-readable representation for logs.
func (p PositionSample) String() string {
	return fmt.Sprintf("PositionSample(%s, ±%.1fm, %s)",
		p.coordinate, p.accuracyMeters, p.timestamp.Format(time.RFC3339))
}
