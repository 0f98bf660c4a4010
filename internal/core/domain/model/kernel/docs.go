// Package kernel provides core domain primitives for the delivery tracking system.
// It implements the fundamental building blocks shared across the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Coordinate: A geographic latitude/longitude value object with haversine distance
//   - PositionSample: A single reading from the device location stream
//
// These primitives enforce domain invariants through guarded constructors:
// a zero value fails validation, so any instance in circulation has passed its
// bounds checks. They are immutable and safe for concurrent use.
package kernel
