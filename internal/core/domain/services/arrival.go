package services

import (
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
)

// ArrivalThresholdMeters is the proximity gate: the maximum great-circle
// distance between driver and destination at which a delivery may be marked
// completed. The boundary is inclusive.
const ArrivalThresholdMeters = 50.0

// ArrivalPolicy is the domain service deciding whether a driver has arrived
// at a delivery destination. The gate is enforced wherever completion is
// requested; it is never bypassable from a client.
//
// Example usage:
//
//	policy := services.NewArrivalPolicy()
//	distance, err := policy.CheckArrival(driverCoord, destinationCoord)
//	if errors.Is(err, errs.ErrLocationMismatch) {
//	    // Show the measured distance to the driver; the session keeps tracking.
//	}
type ArrivalPolicy struct{}

// NewArrivalPolicy creates a new ArrivalPolicy instance.
func NewArrivalPolicy() ArrivalPolicy {
	return ArrivalPolicy{}
}

// CheckArrival measures the distance from driver to destination and applies
// the proximity gate.
//
// Returns the measured distance in meters in both outcomes:
//   - distance <= ArrivalThresholdMeters: nil error, completion may proceed
//   - distance > ArrivalThresholdMeters: a LocationMismatchError carrying the
//     distance for user display
//
// Both coordinates must be properly constructed.
func (ArrivalPolicy) CheckArrival(driver, destination kernel.Coordinate) (float64, error) {
	distance, err := driver.DistanceMeters(destination)
	if err != nil {
		return 0, err
	}

	if distance > ArrivalThresholdMeters {
		return distance, errs.NewLocationMismatchError(distance, ArrivalThresholdMeters)
	}

	return distance, nil
}
