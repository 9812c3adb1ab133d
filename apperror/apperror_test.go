package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageCarriesOperationAndID(t *testing.T) {
	err := NotFound("UpdateSale", "sale not found").WithID(42)

	assert.Equal(t, "UpdateSale(42): sale not found", err.Error())
	assert.Equal(t, "NotFoundError", err.Kind.String())
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := Reference("CreateSale", "unknown salesperson %d", 9)
	wrapped := fmt.Errorf("controller: %w", base)

	assert.True(t, IsReference(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestBoundaryKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Boundary("GetSale", cause).WithID(7)

	assert.True(t, IsBoundary(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithContext(t *testing.T) {
	err := Validation("Decode", "malformed quantity").WithContext("row", 3)

	assert.True(t, IsValidation(err))
	assert.Equal(t, 3, err.Context["row"])
}
