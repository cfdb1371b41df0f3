package api

import (
	"context"

	"authgate/internal/auth/domain/entities"
)

// UserUseCase определяет операции с текущим пользователем.
type UserUseCase interface {
	GetProfile(ctx context.Context, userID string) (*entities.User, *entities.Profile, error)
}
