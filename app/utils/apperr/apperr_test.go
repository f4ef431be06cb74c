package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("place order: %w", InsufficientInventory(7, "Ruby Ring", 2, 3))

	assert.True(t, errors.Is(err, ErrInsufficientInventory))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindInsufficientInventory, KindOf(err))

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, uint(7), e.ProductID)
	assert.Contains(t, e.Error(), "Available: 2, Requested: 3")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Retryable(errors.New("boom")))
}

func TestTransientIsRetryable(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := Transient("storage busy", cause)

	assert.True(t, Retryable(err))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransient)
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("rating", "Rating must be between %d and %d", 1, 5)

	assert.Equal(t, "rating", err.Field)
	assert.Equal(t, "Rating must be between 1 and 5", err.Fields["rating"])
}
