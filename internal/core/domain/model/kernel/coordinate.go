package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180

	// EarthRadiusMeters is the mean Earth radius used by the haversine
	// distance calculation (6371 km).
	EarthRadiusMeters float64 = 6371000
)

// ErrCoordinateIsNotConstructed is returned when attempting to use an improperly
// initialized Coordinate. Coordinates must be created via NewCoordinate or
// ParseCoordinate to guarantee their bounds were checked.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate or ParseCoordinate constructors")

// Coordinate represents a geographic point as a latitude/longitude pair in
// decimal degrees. It is an immutable value object: the zero value is invalid
// and fails validation, so a Coordinate in circulation always holds a position
// inside the valid ranges [-90..90] and [-180..180].
//
// Example:
//
//	dest, err := kernel.NewCoordinate(14.5995, 120.9842)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Destination: %s", dest) // Output: Coordinate(14.599500,120.984200)
type Coordinate struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate from latitude and longitude in decimal
// degrees. Returns an error if either component is outside its valid range or
// is not a finite number.
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	coord := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coord.setLatitude(latitude), coord.setLongitude(longitude)); err != nil {
		return Coordinate{}, err
	}

	return coord, nil
}

// ParseCoordinate creates a Coordinate from string components.
//
// The remote order store serializes latitude/longitude as strings in some
// responses, so the numeric parse happens here. A parse failure is a hard
// error, never a silent zero position.
func ParseCoordinate(latitude, longitude string) (Coordinate, error) {
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return Coordinate{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}

	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return Coordinate{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	return NewCoordinate(lat, lon)
}

// Validate checks if the Coordinate was properly constructed.
// The zero value fails with ErrCoordinateIsNotConstructed.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// String returns a human-readable representation in the format
// "Coordinate(lat,lon)" with six decimal places. Implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("Coordinate(%.6f,%.6f)", c.latitude, c.longitude)
}

// IsEqual compares two coordinates for equality of both components.
// Both coordinates must be properly constructed for the comparison to succeed.
func (c Coordinate) IsEqual(other Coordinate) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

// DistanceMeters calculates the great-circle distance to another coordinate in
// meters using the haversine formula with a mean Earth radius of 6371 km.
//
// The calculation is deterministic and symmetric. Identical points yield
// exactly 0; antipodal points are handled without division by zero since the
// central angle comes from atan2.
//
// Example:
//
//	driver, _ := kernel.NewCoordinate(14.5990, 120.9840)
//	dest, _ := kernel.NewCoordinate(14.5995, 120.9842)
//	meters, err := driver.DistanceMeters(dest) // ~60 meters
func (c Coordinate) DistanceMeters(other Coordinate) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	const degToRad = math.Pi / 180

	dLat := (other.latitude - c.latitude) * degToRad
	dLon := (other.longitude - c.longitude) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(c.latitude*degToRad)*math.Cos(other.latitude*degToRad)*sinLon*sinLon
	// Floating point rounding can push a just past 1 for near-antipodal points.
	a = math.Min(a, 1)

	angle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * angle, nil
}

func (c *Coordinate) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	c.latitude = latitude
	return nil
}

func (c *Coordinate) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	c.longitude = longitude
	return nil
}
