// Package repositories описывает порты хранилищ.
package repositories

import (
	"context"

	"authgate/internal/auth/domain/entities"
)

// UserRepository хранит пользователей. Find* возвращают entities.ErrUserNotFound,
// Create возвращает entities.ErrUsernameTaken или entities.ErrEmailTaken при нарушении уникальности.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
