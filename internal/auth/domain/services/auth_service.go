// Package services описывает доменные типы для сервисов паролей и токенов.
package services

import (
	"errors"
	"time"

	"authgate/internal/auth/domain/entities"
)

// ErrTokenGenerationFailed означает, что выпустить токен не удалось.
var ErrTokenGenerationFailed = errors.New("failed to generate authentication token")

// AuthResult - итог успешной регистрации или входа.
type AuthResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}
