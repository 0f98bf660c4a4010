// Package session coordinates one live delivery run per order: loading the
// order from the remote store, marking it out for delivery, streaming driver
// positions, enforcing the arrival gate, and tearing everything down exactly
// once regardless of how the run ends.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/core/domain/services"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/errs"
)

// State is the lifecycle phase of a delivery session.
type State string

const (
	// StateIdle is the initial state before Start.
	StateIdle State = "idle"

	// StateLoading covers the order fetch.
	StateLoading State = "loading"

	// StateTracking means the location stream is live and positions flow to
	// the store.
	StateTracking State = "tracking"

	// StateCompleted means the delivery was confirmed inside the arrival gate
	// and the session is torn down.
	StateCompleted State = "completed"

	// StateFailed means the session ended without a confirmed delivery:
	// a failed start, or teardown while still tracking.
	StateFailed State = "failed"
)

// mapUpdateType is the message type the map view switches on.
const mapUpdateType = "UPDATE_MAP"

// mapUpdateBuffer bounds the updates channel. A slow consumer loses
// intermediate frames, never the session.
const mapUpdateBuffer = 16

// MapUpdate is one frame for the live delivery map.
type MapUpdate struct {
	Type    string     `json:"type"`
	Payload MapPayload `json:"payload"`
}

// MapPayload carries the two markers the map renders. Either may be nil
// before the corresponding position is known.
type MapPayload struct {
	DriverLocation      *MapPoint `json:"driverLocation"`
	DestinationLocation *MapPoint `json:"destinationLocation"`
}

// MapPoint is a wire-friendly coordinate for map frames.
type MapPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func mapPoint(coordinate *kernel.Coordinate) *MapPoint {
	if coordinate == nil {
		return nil
	}
	return &MapPoint{
		Latitude:  coordinate.Latitude(),
		Longitude: coordinate.Longitude(),
	}
}

// Controller runs a single delivery session for one order.
//
// All state transitions are serialized behind one mutex; position samples may
// arrive from the stream goroutine at any time and are handled in arrival
// order. Store pushes are fire-and-forget with at most one in flight: samples
// arriving while a push is outstanding update the local position and the map,
// but their network push is dropped.
type Controller struct {
	store    ports.OrderStore
	streamer ports.LocationStreamer
	arrival  services.ArrivalPolicy
	logger   *slog.Logger

	orderID   kernel.UUID
	orderType order.Type

	mu           sync.Mutex
	state        State
	destination  *kernel.Coordinate
	driver       *kernel.Coordinate
	subscription ports.Subscription
	updates      chan MapUpdate
	closed       bool
	pushInFlight bool
}

// NewController creates an idle session for the given order.
func NewController(
	orderID kernel.UUID,
	orderType order.Type,
	store ports.OrderStore,
	streamer ports.LocationStreamer,
	arrival services.ArrivalPolicy,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:     store,
		streamer:  streamer,
		arrival:   arrival,
		logger:    logger.With("component", "session", "orderId", orderID.String()),
		orderID:   orderID,
		orderType: orderType,
		state:     StateIdle,
		updates:   make(chan MapUpdate, mapUpdateBuffer),
	}
}

// OrderID returns the order this session tracks.
func (c *Controller) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns the order family of the tracked order.
func (c *Controller) OrderType() order.Type {
	return c.orderType
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// MapUpdates returns the channel of map frames. The channel closes when the
// session is torn down.
func (c *Controller) MapUpdates() <-chan MapUpdate {
	return c.updates
}

// Start begins the delivery run: fetches the order, verifies it has a usable
// destination, and starts the location stream.
//
// A missing destination aborts the run with ErrMissingDestination before any
// position is pushed. A refused location permission also aborts; no partial
// session survives a failed start.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return errs.NewValueIsInvalidError("session state")
	}
	c.state = StateLoading
	c.mu.Unlock()

	aggregate, err := c.store.GetOrder(ctx, c.orderID, c.orderType)
	if err != nil {
		c.abort("order fetch failed", err)
		return err
	}

	if aggregate.DeliveryLocation() == nil {
		err = errs.ErrMissingDestination
		c.abort("order has no delivery location", err)
		return err
	}

	subscription, err := c.streamer.StartTracking(ctx, c.handleSample)
	if err != nil {
		c.abort("location tracking failed to start", err)
		return err
	}

	c.mu.Lock()
	c.destination = aggregate.DeliveryLocation()
	c.driver = aggregate.DriverLocation()
	c.subscription = subscription
	c.state = StateTracking
	c.emitMapUpdateLocked()
	c.mu.Unlock()

	c.logger.Info("delivery session started")
	return nil
}

// StartDelivery marks the order delivering in the store. There is no
// proximity requirement to begin a delivery. A store failure is surfaced to
// the caller for a retry; the session keeps tracking either way.
func (c *Controller) StartDelivery(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateTracking {
		c.mu.Unlock()
		return errs.NewValueIsInvalidError("session state")
	}
	c.mu.Unlock()

	if err := c.store.UpdateStatus(ctx, c.orderID, c.orderType, order.StatusDelivering); err != nil {
		c.logger.Warn("delivering status update failed", "error", err)
		return err
	}

	c.logger.Info("delivery started")
	return nil
}

// MarkDelivered confirms the delivery. The driver must have a known position,
// the destination must be known, and the driver must be inside the arrival
// gate; otherwise the session keeps tracking and the caller gets the reason.
//
// On success the order is marked delivered in the store and the session is
// torn down.
func (c *Controller) MarkDelivered(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateTracking {
		c.mu.Unlock()
		return errs.NewValueIsInvalidError("session state")
	}
	if c.driver == nil || c.destination == nil {
		c.mu.Unlock()
		return errs.ErrIncompleteLocationData
	}
	driver, destination := *c.driver, *c.destination
	c.mu.Unlock()

	distance, err := c.arrival.CheckArrival(driver, destination)
	if err != nil {
		c.logger.Info("delivery confirmation outside arrival gate", "distanceMeters", distance)
		return err
	}

	if err = c.store.UpdateStatus(ctx, c.orderID, c.orderType, order.StatusDelivered); err != nil {
		// The driver is at the door but the store is unreachable. The session
		// stays alive so the driver can retry.
		c.logger.Warn("delivered status update failed", "error", err)
		return err
	}

	c.mu.Lock()
	if c.closed {
		// The session was torn down while the store call was in flight. The
		// delivered status persisted, but the terminal state is already settled.
		c.mu.Unlock()
		c.logger.Warn("delivery confirmed after session teardown")
		return nil
	}
	c.state = StateCompleted
	c.teardownLocked()
	c.mu.Unlock()

	c.logger.Info("delivery completed", "distanceMeters", distance)
	return nil
}

// Close tears the session down. Closing is idempotent; a session closed while
// still tracking ends as failed. Completed sessions keep their state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.state != StateCompleted {
		c.state = StateFailed
	}
	c.teardownLocked()
}

// Finished reports whether the session reached a terminal state.
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateCompleted || c.state == StateFailed
}

// handleSample processes one filtered position sample from the stream.
// Always updates the local position and the map; pushes to the store only
// when no push is already in flight.
func (c *Controller) handleSample(sample kernel.PositionSample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != StateTracking {
		return
	}

	coordinate := sample.Coordinate()
	c.driver = &coordinate
	c.emitMapUpdateLocked()

	if c.pushInFlight {
		return
	}
	c.pushInFlight = true

	go c.pushLocation(coordinate)
}

// pushLocation uploads one coordinate. Failures are logged and forgotten; a
// lost push never ends the session. The response may arrive after teardown,
// which only clears the in-flight flag.
func (c *Controller) pushLocation(coordinate kernel.Coordinate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := c.store.PushDriverLocation(ctx, c.orderID, c.orderType, coordinate)

	c.mu.Lock()
	c.pushInFlight = false
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("driver location push failed", "error", err)
	}
}

// abort ends a session that never reached tracking.
func (c *Controller) abort(reason string, err error) {
	c.logger.Warn("delivery session aborted", "reason", reason, "error", err)

	c.mu.Lock()
	c.state = StateFailed
	c.teardownLocked()
	c.mu.Unlock()
}

// teardownLocked releases the stream and closes the updates channel exactly
// once. Callers hold the mutex and have already settled the terminal state.
func (c *Controller) teardownLocked() {
	if c.closed {
		return
	}
	c.closed = true

	if c.subscription != nil {
		c.subscription.Cancel()
		c.subscription = nil
	}
	close(c.updates)
}

// emitMapUpdateLocked publishes a map frame without blocking. When the buffer
// is full the frame is dropped; the next sample renders a fresh one.
func (c *Controller) emitMapUpdateLocked() {
	if c.closed {
		return
	}

	update := MapUpdate{
		Type: mapUpdateType,
		Payload: MapPayload{
			DriverLocation:      mapPoint(c.driver),
			DestinationLocation: mapPoint(c.destination),
		},
	}

	select {
	case c.updates <- update:
	default:
	}
}

// IsRecoverable reports whether an error from MarkDelivered leaves the
// session alive for another attempt.
func IsRecoverable(err error) bool {
	return errors.Is(err, errs.ErrLocationMismatch) ||
		errors.Is(err, errs.ErrIncompleteLocationData) ||
		errors.Is(err, errs.ErrNetworkFailure)
}
