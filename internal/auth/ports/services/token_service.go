package services

import (
	"context"
	"time"
)

// TokenService выпускает и проверяет bearer токены. subject - ID пользователя.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, subject string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
