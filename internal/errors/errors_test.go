package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "restaurant"}
		assert.Equal(t, "restaurant not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "restaurant"}
		err2 := &NotFoundError{Entity: "restaurant"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "restaurant"}
		err2 := &NotFoundError{Entity: "organization"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrOrganizationNotFound, ErrOrganizationNotFound))
		assert.False(t, errors.Is(ErrOrganizationNotFound, ErrRestaurantNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrUserNotFound))
		assert.False(t, IsNotFound(ErrInvalidCredentials))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "restaurant", Context: "with this slug in the organization"}
		assert.Equal(t, "restaurant already exists with this slug in the organization", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "restaurant"}
		assert.Equal(t, "restaurant already exists", err.Error())
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrUserExists))
		assert.False(t, IsAlreadyExists(ErrUserNotFound))
	})
}

func TestAuthenticationErrors(t *testing.T) {
	t.Run("merged credential error carries one generic message", func(t *testing.T) {
		assert.Equal(t, "invalid organization or credentials", ErrInvalidCredentials.Error())
	})

	t.Run("IsAuthentication helper", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrInvalidCredentials))
		assert.True(t, IsAuthentication(ErrSubscriptionExpired))
		assert.True(t, IsAuthentication(ErrExpiredToken))
		assert.False(t, IsAuthentication(ErrRestaurantAccessDenied))
	})

	t.Run("IsAuthorization helper", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrRestaurantAccessDenied))
		assert.False(t, IsAuthorization(ErrInvalidToken))
	})
}

func TestMigrationStepError(t *testing.T) {
	cause := errors.New("relation does not exist")
	err := NewMigrationStepError("backup_legacy_users", cause)

	t.Run("Error message names the step", func(t *testing.T) {
		assert.Equal(t, `migration step "backup_legacy_users" failed: relation does not exist`, err.Error())
	})

	t.Run("Unwrap exposes the cause", func(t *testing.T) {
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("IsMigrationStep helper", func(t *testing.T) {
		assert.True(t, IsMigrationStep(err))
		assert.True(t, IsMigrationStep(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsMigrationStep(cause))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "slug", Message: "must be URL-safe"}
		assert.Equal(t, "validation error: slug - must be URL-safe", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid payload"}
		assert.Equal(t, "validation error: invalid payload", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("slug", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrUserNotFound))
	})
}
