package session

import (
	"errors"
	"log/slog"
	"sync"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/core/domain/services"
	"deliverytracking/internal/core/ports"
)

// ErrSessionAlreadyActive is returned when a delivery session is requested
// for an order that already has a live one.
var ErrSessionAlreadyActive = errors.New("a delivery session is already active for this order")

// Registry holds at most one delivery session per order. Finished sessions
// stay registered until swept so callers can still read their terminal state.
type Registry struct {
	store    ports.OrderStore
	streamer ports.LocationStreamer
	arrival  services.ArrivalPolicy
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Controller
}

// NewRegistry creates an empty session registry.
func NewRegistry(
	store ports.OrderStore,
	streamer ports.LocationStreamer,
	arrival services.ArrivalPolicy,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		store:    store,
		streamer: streamer,
		arrival:  arrival,
		logger:   logger,
		sessions: make(map[string]*Controller),
	}
}

func sessionKey(orderID kernel.UUID, orderType order.Type) string {
	return string(orderType) + "/" + orderID.String()
}

// Acquire creates a session for the order. A finished session under the same
// key is replaced; a live one is protected and causes ErrSessionAlreadyActive.
func (r *Registry) Acquire(orderID kernel.UUID, orderType order.Type) (*Controller, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(orderID, orderType)
	if existing, ok := r.sessions[key]; ok {
		if !existing.Finished() {
			return nil, ErrSessionAlreadyActive
		}
		existing.Close()
	}

	controller := NewController(orderID, orderType, r.store, r.streamer, r.arrival, r.logger)
	r.sessions[key] = controller
	return controller, nil
}

// Get returns the session for the order, if any.
func (r *Registry) Get(orderID kernel.UUID, orderType order.Type) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	controller, ok := r.sessions[sessionKey(orderID, orderType)]
	return controller, ok
}

// Remove closes and drops the session for the order.
func (r *Registry) Remove(orderID kernel.UUID, orderType order.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(orderID, orderType)
	if controller, ok := r.sessions[key]; ok {
		controller.Close()
		delete(r.sessions, key)
	}
}

// Sweep drops every finished session and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, controller := range r.sessions {
		if controller.Finished() {
			controller.Close()
			delete(r.sessions, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of registered sessions, live and finished.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
