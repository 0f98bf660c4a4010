package kernel_test

import (
	"testing"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPositionSample(t *testing.T) {
	coord, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)
	now := time.Now()

	t.Run("valid sample", func(t *testing.T) {
		sample, err := kernel.NewPositionSample(coord, 8.5, now)

		require.NoError(t, err)
		require.NoError(t, sample.Validate())
		equal, _ := sample.Coordinate().IsEqual(coord)
		assert.True(t, equal)
		assert.InDelta(t, 8.5, sample.AccuracyMeters(), 1e-12)
		assert.Equal(t, now, sample.Timestamp())
	})

	t.Run("unconstructed coordinate is rejected", func(t *testing.T) {
		var zero kernel.Coordinate
		_, err := kernel.NewPositionSample(zero, 5, now)
		require.Error(t, err)
	})

	t.Run("negative accuracy is rejected", func(t *testing.T) {
		_, err := kernel.NewPositionSample(coord, -1, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero timestamp is rejected", func(t *testing.T) {
		_, err := kernel.NewPositionSample(coord, 5, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var sample kernel.PositionSample
		require.Error(t, sample.Validate())
	})
}
