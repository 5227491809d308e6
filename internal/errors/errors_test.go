package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithContext(t *testing.T) {
	t.Run("wraps error with operation", func(t *testing.T) {
		err := WrapWithContext(ErrTest, "fetch commits")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch commits")
		assert.ErrorIs(t, err, ErrTest)
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapWithContext(nil, "anything"))
	})
}

func TestValidationError(t *testing.T) {
	err := ValidationError("per_page", "must be at most 30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed for per_page")
	assert.Contains(t, err.Error(), "must be at most 30")
}

func TestEmptyFieldError(t *testing.T) {
	err := EmptyFieldError("token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field cannot be empty: token")
}

func TestUnexpectedStatusError(t *testing.T) {
	err := UnexpectedStatusError("list repositories", 503)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.True(t, IsUnexpectedStatus(err))
	assert.False(t, IsUnexpectedStatus(ErrTest))
	assert.False(t, IsUnexpectedStatus(errors.New("other"))) //nolint:err113 // test-only dynamic error
}

func TestInvalidFieldError(t *testing.T) {
	err := InvalidFieldError("provider", "cohere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid field: provider: cohere")
}
