package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/auth/domain/entities"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err  *entities.Error
		kind error
	}{
		{entities.ErrUsernameRequired, entities.ErrValidation},
		{entities.ErrUsernameTooShort, entities.ErrValidation},
		{entities.ErrInvalidEmail, entities.ErrValidation},
		{entities.ErrPasswordRequired, entities.ErrValidation},
		{entities.ErrPasswordTooShort, entities.ErrValidation},
		{entities.ErrIdentifierRequired, entities.ErrValidation},
		{entities.ErrUsernameTaken, entities.ErrConflict},
		{entities.ErrEmailTaken, entities.ErrConflict},
		{entities.ErrInvalidCredentials, entities.ErrUnauthorized},
		{entities.ErrUserNotFound, entities.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.err.Message(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", tt.err))

			assert.ErrorIs(t, wrapped, tt.kind)
			assert.ErrorIs(t, wrapped, tt.err)

			var domainErr *entities.Error
			require.True(t, errors.As(wrapped, &domainErr))
			assert.Equal(t, tt.err.Message(), domainErr.Message())
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, entities.ErrUsernameTaken, entities.ErrEmailTaken)
	assert.NotErrorIs(t, entities.ErrInvalidCredentials, entities.ErrValidation)
}
