package errs_test

import (
	"errors"
	"testing"

	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("clientName", "anna")

		assert.Equal(t, "clientName", err.ParamName)
		assert.Equal(t, "anna", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: anna", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("clientName", "anna", cause)

		assert.Equal(t, "clientName", err.ParamName)
		assert.Equal(t, "anna", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: clientName, ID is: anna (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("zone")

		assert.Equal(t, "zone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: zone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("zone", cause)

		assert.Equal(t, "zone", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: zone (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("portions", 25, 1, 20)

		assert.Equal(t, "portions", err.ParamName)
		assert.Equal(t, 25, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 20, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 25 is portions, min value is 1, max value is 20", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestDeadlinePassedError(t *testing.T) {
	err := errs.NewDeadlinePassedError("2024-06-03", "2024-05-25 23:59:59")

	assert.Equal(t, "2024-06-03", err.TargetDate)
	assert.Equal(t, "deadline passed: 2024-06-03 locked since 2024-05-25 23:59:59", err.Error())
	assert.Equal(t, errs.ErrDeadlinePassed, err.Unwrap())
}

func TestSpacingError(t *testing.T) {
	err := errs.NewSpacingError("2024-06-03", "2024-06-16", 13, 14)

	assert.Equal(t, 13, err.GapDays)
	assert.Equal(t, "date spacing violated: 2024-06-03 and 2024-06-16 are 13 days apart, minimum is 14", err.Error())
	assert.Equal(t, errs.ErrSpacingViolated, err.Unwrap())
}

func TestConnectivityError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := errs.NewConnectivityError("fetch clients", cause)

	assert.Equal(t, "fetch clients", err.Operation)
	assert.Equal(t, "remote store unreachable: fetch clients (cause: dial tcp: timeout)", err.Error())
	assert.Equal(t, errs.ErrNotConnected, err.Unwrap())
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	err := errs.NewPersistenceError("snapshot", cause)

	assert.Equal(t, "snapshot", err.Key)
	assert.Equal(t, "persistence failed: snapshot (cause: disk full)", err.Error())
	assert.Equal(t, errs.ErrPersistence, err.Unwrap())
}

func TestQueueReplayError(t *testing.T) {
	err := errs.NewQueueReplayError(4, 2, nil)

	assert.Equal(t, "pending queue replay failed: 2 of 4 entries failed", err.Error())
	assert.Equal(t, errs.ErrQueueReplay, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "deadline passed", errs.ErrDeadlinePassed.Error())
		assert.Equal(t, "date spacing violated", errs.ErrSpacingViolated.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("clientName", "anna"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("zone"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("portions", 25, 1, 20), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("clientName"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewSpacingError("a", "b", 13, 14), errs.ErrSpacingViolated)
		require.ErrorIs(t, errs.NewConnectivityError("probe", nil), errs.ErrNotConnected)
		require.ErrorIs(t, errs.NewPersistenceError("snapshot", nil), errs.ErrPersistence)
		require.ErrorIs(t, errs.NewQueueReplayError(1, 1, nil), errs.ErrQueueReplay)
	})
}
