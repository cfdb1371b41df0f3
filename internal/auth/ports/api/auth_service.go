// Package api описывает входные порты сервиса аутентификации.
package api

import (
	"context"

	"authgate/internal/auth/domain/services"
)

// AuthUseCase - регистрация и вход по учетным данным.
type AuthUseCase interface {
	Register(ctx context.Context, username, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, identifier, password string) (*services.AuthResult, error)
}
