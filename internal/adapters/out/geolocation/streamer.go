// Package geolocation adapts a raw device position feed into the filtered
// location stream delivery sessions consume. The platform feed is noisy; this
// adapter throttles it so a session only sees fixes that are both recent
// enough apart in time and far enough apart in space.
package geolocation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/ports"
)

const (
	// DefaultMinInterval is the minimum time between emitted samples.
	DefaultMinInterval = 5 * time.Second

	// DefaultMinDistanceMeters is the minimum movement between emitted samples.
	DefaultMinDistanceMeters = 10.0
)

// PositionProvider is the raw platform location API.
// Fixes arrive on the provider's own goroutine in timestamp order.
type PositionProvider interface {
	// RequestPermission asks the device for location access.
	// Returns errs.ErrPermissionDenied (wrapped) when the user refuses.
	RequestPermission(ctx context.Context) error

	// WatchPosition begins feeding raw fixes to onFix and returns a stop
	// function that halts the feed. Stop must be called exactly once.
	WatchPosition(onFix func(kernel.PositionSample)) (stop func(), err error)
}

// Options tunes the stream filter.
//
// A raw fix is emitted only when BOTH the minimum interval has elapsed since
// the last emitted sample AND the device has moved at least the minimum
// distance from it. The first fix of a stream is always emitted so a session
// gets an initial position immediately.
type Options struct {
	MinInterval       time.Duration
	MinDistanceMeters float64
}

// DefaultOptions returns the filter settings used in production.
func DefaultOptions() Options {
	return Options{
		MinInterval:       DefaultMinInterval,
		MinDistanceMeters: DefaultMinDistanceMeters,
	}
}

// Streamer implements ports.LocationStreamer on top of a PositionProvider.
type Streamer struct {
	provider PositionProvider
	opts     Options
	logger   *slog.Logger
}

// NewStreamer creates a location streamer with the given filter options.
func NewStreamer(provider PositionProvider, opts Options, logger *slog.Logger) *Streamer {
	return &Streamer{
		provider: provider,
		opts:     opts,
		logger:   logger.With("component", "geolocation"),
	}
}

// StartTracking requests location permission and begins streaming filtered
// samples into onSample. A permission refusal is returned to the caller;
// tracking never starts silently degraded.
func (s *Streamer) StartTracking(
	ctx context.Context,
	onSample func(kernel.PositionSample),
) (ports.Subscription, error) {
	if err := s.provider.RequestPermission(ctx); err != nil {
		s.logger.Warn("location permission refused", "error", err)
		return nil, err
	}

	filter := &sampleFilter{opts: s.opts}

	stop, err := s.provider.WatchPosition(func(sample kernel.PositionSample) {
		if filter.shouldEmit(sample) {
			onSample(sample)
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("location tracking started",
		"minInterval", s.opts.MinInterval,
		"minDistanceMeters", s.opts.MinDistanceMeters)

	return &subscription{stop: stop, logger: s.logger}, nil
}

// sampleFilter keeps the last emitted sample and decides whether the next raw
// fix passes the interval and distance thresholds. Elapsed time is measured
// between fix timestamps, not wall clock reads.
type sampleFilter struct {
	mu       sync.Mutex
	opts     Options
	last     kernel.PositionSample
	hasFirst bool
}

func (f *sampleFilter) shouldEmit(sample kernel.PositionSample) bool {
	if err := sample.Validate(); err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasFirst {
		f.last = sample
		f.hasFirst = true
		return true
	}

	elapsed := sample.Timestamp().Sub(f.last.Timestamp())
	if elapsed < f.opts.MinInterval {
		return false
	}

	distance, err := f.last.Coordinate().DistanceMeters(sample.Coordinate())
	if err != nil || distance < f.opts.MinDistanceMeters {
		return false
	}

	f.last = sample
	return true
}

// subscription stops the underlying watch exactly once. Extra Cancel calls
// are no-ops and never reach the platform API.
type subscription struct {
	once   sync.Once
	stop   func()
	logger *slog.Logger
}

func (s *subscription) Cancel() {
	s.once.Do(func() {
		s.stop()
		s.logger.Info("location tracking stopped")
	})
}
