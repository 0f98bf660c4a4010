package kernel_test

import (
	"testing"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	t.Run("valid coordinate", func(t *testing.T) {
		coord, err := kernel.NewCoordinate(14.5995, 120.9842)

		require.NoError(t, err)
		assert.InDelta(t, 14.5995, coord.Latitude(), 1e-12)
		assert.InDelta(t, 120.9842, coord.Longitude(), 1e-12)
		require.NoError(t, coord.Validate())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		for _, pair := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			_, err := kernel.NewCoordinate(pair[0], pair[1])
			require.NoError(t, err)
		}
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := kernel.NewCoordinate(90.0001, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := kernel.NewCoordinate(0, -180.0001)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var coord kernel.Coordinate
		require.Error(t, coord.Validate())
	})
}

func TestParseCoordinate(t *testing.T) {
	t.Run("string components from the store", func(t *testing.T) {
		coord, err := kernel.ParseCoordinate("14.5995", "120.9842")

		require.NoError(t, err)
		assert.InDelta(t, 14.5995, coord.Latitude(), 1e-12)
		assert.InDelta(t, 120.9842, coord.Longitude(), 1e-12)
	})

	t.Run("unparsable latitude is a hard error", func(t *testing.T) {
		_, err := kernel.ParseCoordinate("not-a-number", "120.9842")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unparsable longitude is a hard error", func(t *testing.T) {
		_, err := kernel.ParseCoordinate("14.5995", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCoordinate_DistanceMeters(t *testing.T) {
	t.Run("identical points yield exactly zero", func(t *testing.T) {
		coords := [][2]float64{{0, 0}, {14.5995, 120.9842}, {-33.8688, 151.2093}, {90, 0}}
		for _, pair := range coords {
			a, err := kernel.NewCoordinate(pair[0], pair[1])
			require.NoError(t, err)

			d, err := a.DistanceMeters(a)
			require.NoError(t, err)
			assert.Zero(t, d)
		}
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewCoordinate(14.5995, 120.9842)
		b, _ := kernel.NewCoordinate(-33.8688, 151.2093)

		ab, err := a.DistanceMeters(b)
		require.NoError(t, err)
		ba, err := b.DistanceMeters(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-6)
	})

	t.Run("short urban distance", func(t *testing.T) {
		// Destination and a driver roughly 60 meters away in Manila.
		dest, _ := kernel.NewCoordinate(14.5995, 120.9842)
		driver, _ := kernel.NewCoordinate(14.5990, 120.9840)

		d, err := driver.DistanceMeters(dest)
		require.NoError(t, err)
		assert.Greater(t, d, 50.0)
		assert.Less(t, d, 65.0)
	})

	t.Run("quarter meridian", func(t *testing.T) {
		equator, _ := kernel.NewCoordinate(0, 0)
		pole, _ := kernel.NewCoordinate(90, 0)

		d, err := equator.DistanceMeters(pole)
		require.NoError(t, err)
		// Quarter of the mean circumference: pi/2 * 6371 km.
		assert.InDelta(t, 10007543, d, 100)
	})

	t.Run("antipodal points do not produce NaN", func(t *testing.T) {
		a, _ := kernel.NewCoordinate(0, 0)
		b, _ := kernel.NewCoordinate(0, 180)

		d, err := a.DistanceMeters(b)
		require.NoError(t, err)
		assert.False(t, d != d, "distance must not be NaN")
		// Half of the mean circumference: pi * 6371 km.
		assert.InDelta(t, 20015087, d, 100)
	})

	t.Run("unconstructed coordinate is rejected", func(t *testing.T) {
		a, _ := kernel.NewCoordinate(0, 0)
		var zero kernel.Coordinate

		_, err := a.DistanceMeters(zero)
		require.Error(t, err)
	})
}

func TestCoordinate_IsEqual(t *testing.T) {
	a, _ := kernel.NewCoordinate(14.5995, 120.9842)
	b, _ := kernel.NewCoordinate(14.5995, 120.9842)
	c, _ := kernel.NewCoordinate(14.5990, 120.9840)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	var zero kernel.Coordinate
	_, err = a.IsEqual(zero)
	require.Error(t, err)
}

func TestCoordinate_String(t *testing.T) {
	coord, _ := kernel.NewCoordinate(14.5995, 120.9842)
	assert.Equal(t, "Coordinate(14.599500,120.984200)", coord.String())
}
