package order

import (
	"deliverytracking/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as stored and exchanged
// with the remote order store. Values are the wire strings themselves.
//
// Normal orders walk:
//
//	pending ──> processing ──> delivering ──> delivered
//
// Custom orders walk:
//
//	to be quoted ──> quoted ──> approved ──> gathering ──> to be delivered ──> delivering ──> delivered
//
// cancelled is reachable from any non-terminal state in both walks.
//
// TransitionTo deliberately does NOT enforce these walks: the store accepts
// any whitelisted status regardless of the current one, and clients rely on
// that for the gathering revert flow. The diagrams above document intent,
// not enforcement.
type Status string

const (
	// StatusPending is the initial status of a normal order.
	StatusPending Status = "pending"
	// StatusProcessing indicates a normal order being prepared.
	StatusProcessing Status = "processing"
	// StatusDelivering indicates the order is out with a driver.
	StatusDelivering Status = "delivering"
	// StatusDelivered is the terminal success status.
	StatusDelivered Status = "delivered"
	// StatusCancelled is the terminal abandonment status.
	StatusCancelled Status = "cancelled"

	// StatusToBeQuoted is the initial status of a custom order.
	StatusToBeQuoted Status = "to be quoted"
	// StatusQuoted indicates a custom order priced and awaiting approval.
	StatusQuoted Status = "quoted"
	// StatusApproved indicates the customer accepted the quote.
	StatusApproved Status = "approved"
	// StatusGathering indicates items are being collected for a custom order.
	StatusGathering Status = "gathering"
	// StatusToBeDelivered indicates a gathered custom order awaiting dispatch.
	StatusToBeDelivered Status = "to be delivered"
	// StatusToDeliver is a legacy alias still present in stored rows.
	StatusToDeliver Status = "to deliver"
)

// allowedStatuses is the full whitelist the store accepts, covering both
// order type walks plus the legacy "to deliver" value.
func allowedStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:       {},
		StatusProcessing:    {},
		StatusDelivering:    {},
		StatusDelivered:     {},
		StatusCancelled:     {},
		StatusToBeQuoted:    {},
		StatusQuoted:        {},
		StatusApproved:      {},
		StatusGathering:     {},
		StatusToBeDelivered: {},
		StatusToDeliver:     {},
	}
}

// AllowedStatuses returns the whitelist of statuses the store accepts.
func AllowedStatuses() []Status {
	return []Status{
		StatusPending,
		StatusProcessing,
		StatusDelivering,
		StatusDelivered,
		StatusCancelled,
		StatusToBeQuoted,
		StatusQuoted,
		StatusApproved,
		StatusGathering,
		StatusToBeDelivered,
		StatusToDeliver,
	}
}

// Validate checks membership in the status whitelist.
// Unknown values fail with an InvalidStatusError, which callers surface
// as the store's 400 "Invalid status provided." response.
func (s Status) Validate() error {
	if _, ok := allowedStatuses()[s]; !ok {
		return errs.NewInvalidStatusError(string(s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the order lifecycle.
// Delivered and cancelled orders accept no further workflow actions and
// any active tracking session over them is torn down.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo validates target and returns it as the new status.
//
// Only whitelist membership is checked; the current status is never consulted,
// matching the store's permissive behavior (a known weakness: nothing stops a
// normal order from being set to "quoted"). Tightening this to the per-type
// walks documented on Status needs product sign-off because the gathering
// revert flow depends on the laxness.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	return target, nil
}
