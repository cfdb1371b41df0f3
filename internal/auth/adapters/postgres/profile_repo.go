package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"authgate/internal/auth/domain/entities"
	"authgate/internal/auth/ports/repositories"
	"authgate/pkg/logger"
)

// ProfileRepository реализует repositories.ProfileRepository.
type ProfileRepository struct {
	pool PgxPoolInterface
}

// NewProfileRepository создает репозиторий профилей.
func NewProfileRepository(pool PgxPoolInterface) repositories.ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// FindByUserID возвращает профиль пользователя или (nil, nil), если его нет.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "FindByUserID"))

	query := `
        SELECT id, user_id, bio, created_at
        FROM profiles
        WHERE user_id = $1
    `

	var profile entities.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found", zap.String("userID", userID))
			return nil, nil
		}
		log.Error(ctx, "error finding profile", zap.Error(err))
		return nil, fmt.Errorf("error querying profile by user id: %w", err)
	}

	return &profile, nil
}
