package order_test

import (
	"testing"

	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("all whitelisted statuses are valid", func(t *testing.T) {
		for _, s := range order.AllowedStatuses() {
			require.NoError(t, s.Validate(), "status %q", s)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		for _, s := range []order.Status{"bogus", "", "Delivered", "shipped"} {
			err := s.Validate()
			require.ErrorIs(t, err, errs.ErrInvalidStatus, "status %q", s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())

	for _, s := range []order.Status{
		order.StatusPending, order.StatusProcessing, order.StatusDelivering,
		order.StatusToBeQuoted, order.StatusQuoted, order.StatusApproved,
		order.StatusGathering, order.StatusToBeDelivered, order.StatusToDeliver,
	} {
		assert.False(t, s.IsTerminal(), "status %q", s)
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("any whitelisted target is accepted regardless of current state", func(t *testing.T) {
		// The store is permissive by design; even a normal-order status can
		// move to a custom-order one.
		for _, from := range order.AllowedStatuses() {
			for _, to := range order.AllowedStatuses() {
				got, err := from.TransitionTo(to)
				require.NoError(t, err)
				assert.Equal(t, to, got)
			}
		}
	})

	t.Run("unknown target always fails with invalid status", func(t *testing.T) {
		for _, from := range order.AllowedStatuses() {
			_, err := from.TransitionTo("bogus")
			require.ErrorIs(t, err, errs.ErrInvalidStatus)
		}
	})
}

func TestType(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		typ, err := order.TypeFromString("custom")
		require.NoError(t, err)
		assert.Equal(t, order.TypeCustom, typ)

		typ, err = order.TypeFromString("normal")
		require.NoError(t, err)
		assert.Equal(t, order.TypeNormal, typ)

		// Omitted orderType defaults to normal, as the store does.
		typ, err = order.TypeFromString("")
		require.NoError(t, err)
		assert.Equal(t, order.TypeNormal, typ)

		_, err = order.TypeFromString("express")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("initial status", func(t *testing.T) {
		assert.Equal(t, order.StatusPending, order.TypeNormal.InitialStatus())
		assert.Equal(t, order.StatusToBeQuoted, order.TypeCustom.InitialStatus())
	})
}
