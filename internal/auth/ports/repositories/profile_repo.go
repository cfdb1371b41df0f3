package repositories

import (
	"context"

	"authgate/internal/auth/domain/entities"
)

// ProfileRepository читает профили. Отсутствие профиля - не ошибка: возвращается (nil, nil).
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entities.Profile, error)
}
