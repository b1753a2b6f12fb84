package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shopId", "123")

		assert.Equal(t, "shopId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("shopId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shopId, ID is: 123 (cause: connection refused)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("unknown transition")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, "value is invalid: status (cause: unknown transition)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("street")

	assert.Equal(t, "value is required: street", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("update order status")

	assert.Equal(t, "operation is not allowed: update order status", err.Error())
	assert.Equal(t, errs.ErrForbidden, err.Unwrap())
}

func TestInsufficientStockError(t *testing.T) {
	err := errs.NewInsufficientStockError("Pan Amasado", 5, 2)

	assert.Equal(t, "Pan Amasado", err.ProductName)
	assert.Equal(t, 5, err.Requested)
	assert.Equal(t, 2, err.Available)
	assert.Equal(t, `insufficient stock: product "Pan Amasado" has 2 available, 5 requested`, err.Error())
	assert.Equal(t, errs.ErrInsufficientStock, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	cause := errors.New("unique constraint violated")
	err := errs.NewConflictErrorWithCause("orderNumber", cause)

	assert.Equal(t, "duplicate record: orderNumber (cause: unique constraint violated)", err.Error())
	assert.Equal(t, errs.ErrConflict, err.Unwrap())
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("order", "abc")

	assert.Equal(t, "concurrent modification: param is: order, ID is: abc", err.Error())
	assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("street"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewForbiddenError("assign courier"), errs.ErrForbidden)
	require.ErrorIs(t, errs.NewInsufficientStockError("x", 2, 1), errs.ErrInsufficientStock)
	require.ErrorIs(t, errs.NewConflictError("slug"), errs.ErrConflict)
	require.ErrorIs(t, errs.NewConcurrentModificationError("order", "1"), errs.ErrConcurrentModification)
}

func TestSanitizeNewlines(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("notes", errors.New("line one\nline two"))

	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "line one line two")
}
