package errs_test

import (
	"errors"
	"testing"

	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInputError(t *testing.T) {
	t.Run("NewInvalidInputError", func(t *testing.T) {
		err := errs.NewInvalidInputError("distance_km")

		assert.Equal(t, "distance_km", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invalid input: distance_km", err.Error())
		assert.Equal(t, errs.ErrInvalidInput, err.Unwrap())
	})

	t.Run("NewInvalidInputErrorWithCause", func(t *testing.T) {
		cause := errors.New("value is negative")
		err := errs.NewInvalidInputErrorWithCause("weight_kg", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "invalid input: weight_kg (cause: value is negative)", err.Error())
		assert.Equal(t, errs.ErrInvalidInput, err.Unwrap())
	})
}

func TestNotFoundError(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := errs.NewNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrNotFound, err.Unwrap())
	})

	t.Run("NewNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewNotFoundErrorWithCause("riderId", "456", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: riderId, ID is: 456 (cause: database connection failed)",
			err.Error())
	})
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("rider", "cancel delivery")

	assert.Equal(t, "rider", err.Role)
	assert.Equal(t, "cancel delivery", err.Action)
	assert.Equal(t, "actor is not permitted to perform this action: rider may not cancel delivery", err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("in_transit", "accepted")

	assert.Equal(t, "in_transit", err.From)
	assert.Equal(t, "accepted", err.To)
	assert.Equal(t, "status transition is not allowed: in_transit -> accepted", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestTerminalStateError(t *testing.T) {
	err := errs.NewTerminalStateError("cancelled")

	assert.Equal(t, "cancelled", err.Status)
	assert.Equal(t, "delivery is in a terminal state: cancelled", err.Error())
	assert.Equal(t, errs.ErrTerminalState, err.Unwrap())
}

func TestRiderUnavailableError(t *testing.T) {
	err := errs.NewRiderUnavailableError("rider-9")

	assert.Equal(t, "rider-9", err.RiderID)
	assert.Equal(t, "rider is not available: rider-9", err.Error())
	assert.Equal(t, errs.ErrRiderUnavailable, err.Unwrap())
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("delivery-1", 3)

	assert.Equal(t, "delivery-1", err.DeliveryID)
	assert.Equal(t, int64(3), err.Version)
	assert.Equal(t, "version conflict: delivery delivery-1 at version 3", err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := errs.NewUnavailableError("delivery store update", cause)

	assert.Equal(t, "delivery store update", err.Op)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t,
		"downstream dependency is unavailable: delivery store update (cause: context deadline exceeded)",
		err.Error())
	assert.ErrorIs(t, err, errs.ErrUnavailable)
	// The cause stays matchable through the wrapper.
	assert.ErrorIs(t, err, cause)
}

func TestSanitizeNewlines(t *testing.T) {
	err := errs.NewInvalidInputErrorWithCause("pickup", errors.New("line\nbreak"))
	assert.Contains(t, err.Error(), "line break")
	assert.NotContains(t, err.Error(), "\n")
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with every kind", func(t *testing.T) {
		require.ErrorIs(t, errs.NewInvalidInputError("size_cm"), errs.ErrInvalidInput)
		require.ErrorIs(t, errs.NewNotFoundError("deliveryId", "1"), errs.ErrNotFound)
		require.ErrorIs(t, errs.NewForbiddenError("customer", "start transit"), errs.ErrForbidden)
		require.ErrorIs(t, errs.NewInvalidTransitionError("pending", "delivered"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewTerminalStateError("delivered"), errs.ErrTerminalState)
		require.ErrorIs(t, errs.NewRiderUnavailableError("r"), errs.ErrRiderUnavailable)
		require.ErrorIs(t, errs.NewVersionConflictError("d", 1), errs.ErrVersionConflict)
		require.ErrorIs(t, errs.NewUnavailableError("op", nil), errs.ErrUnavailable)
	})

	t.Run("kinds are distinguishable", func(t *testing.T) {
		err := errs.NewVersionConflictError("d", 2)
		assert.False(t, errors.Is(err, errs.ErrInvalidTransition))
		assert.False(t, errors.Is(err, errs.ErrTerminalState))
	})
}
