package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the delivery tracking workflow.
var (
	// ErrPermissionDenied indicates the device refused location access.
	// Session start must surface this to the caller, never swallow it.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrMissingDestination indicates the fetched order has no usable
	// delivery location (absent, or latitude/longitude failed to parse).
	ErrMissingDestination = errors.New("delivery destination is missing")

	// ErrIncompleteLocationData indicates a delivery completion was attempted
	// before both the driver position and the destination were known.
	ErrIncompleteLocationData = errors.New("driver or destination location is missing")

	// ErrInvalidStatus indicates an order status outside the allowed status set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrLocationMismatch indicates the driver is outside the delivery proximity gate.
	ErrLocationMismatch = errors.New("location mismatch")

	// ErrNetworkFailure indicates a call to the remote order store failed.
	ErrNetworkFailure = errors.New("network failure")
)

// MissingDestinationError reports an order whose delivery location cannot be
// used as a tracking destination: absent, or present but unparseable.
type MissingDestinationError struct {
	Cause error
}

// NewMissingDestinationErrorWithCause creates a MissingDestinationError
// wrapping the underlying parse failure.
func NewMissingDestinationErrorWithCause(cause error) *MissingDestinationError {
	return &MissingDestinationError{Cause: cause}
}

// Error formats the error message including the cause when present.
func (e *MissingDestinationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", ErrMissingDestination, e.Cause)
	}
	return ErrMissingDestination.Error()
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *MissingDestinationError) Unwrap() error {
	return ErrMissingDestination
}

// InvalidStatusError reports an order status that is not in the allowed set.
type InvalidStatusError struct {
	Status string
	Cause  error
}

// NewInvalidStatusError creates an InvalidStatusError for the rejected status value.
func NewInvalidStatusError(status string) *InvalidStatusError {
	return &InvalidStatusError{Status: status}
}

// NewInvalidStatusErrorWithCause creates an InvalidStatusError wrapping an underlying cause.
func NewInvalidStatusErrorWithCause(status string, cause error) *InvalidStatusError {
	return &InvalidStatusError{Status: status, Cause: cause}
}

// Error formats the error message including the cause when present.
func (e *InvalidStatusError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %q (cause: %s)", ErrInvalidStatus, e.Status, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %q", ErrInvalidStatus, e.Status))
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}

// LocationMismatchError reports a delivery completion attempt outside the
// proximity gate. It is an expected outcome rather than a fault: the caller
// shows DistanceMeters to the user and the session keeps tracking.
type LocationMismatchError struct {
	DistanceMeters  float64
	ThresholdMeters float64
}

// NewLocationMismatchError creates a LocationMismatchError carrying the measured
// distance and the gate threshold that was not satisfied.
func NewLocationMismatchError(distanceMeters, thresholdMeters float64) *LocationMismatchError {
	return &LocationMismatchError{DistanceMeters: distanceMeters, ThresholdMeters: thresholdMeters}
}

// Error formats the message shown to the driver, with the distance rounded to
// whole meters the way the admin client displays it.
func (e *LocationMismatchError) Error() string {
	return fmt.Sprintf("%s: %.0f meters away from the delivery location, must be within %.0f meters",
		ErrLocationMismatch, e.DistanceMeters, e.ThresholdMeters)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *LocationMismatchError) Unwrap() error {
	return ErrLocationMismatch
}

// NetworkFailureError reports a failed remote order store operation.
// Op names the operation (e.g. "update-status") for log correlation.
type NetworkFailureError struct {
	Op    string
	Cause error
}

// NewNetworkFailureError creates a NetworkFailureError for the named operation.
func NewNetworkFailureError(op string, cause error) *NetworkFailureError {
	return &NetworkFailureError{Op: op, Cause: cause}
}

// Error formats the error message including the cause when present.
func (e *NetworkFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrNetworkFailure, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNetworkFailure, e.Op)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *NetworkFailureError) Unwrap() error {
	return ErrNetworkFailure
}
