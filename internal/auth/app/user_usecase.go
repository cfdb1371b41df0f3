package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"authgate/internal/auth/domain/entities"
	"authgate/internal/auth/ports/api"
	"authgate/internal/auth/ports/repositories"
	"authgate/pkg/logger"
)

const (
	methodGetProfile = "GetProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"

	msgErrFindingUserByID = "failed to find user by ID"
	msgErrFindingProfile  = "failed to load profile"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingUser     = "fetching user"
	errCtxFetchingProfile  = "fetching profile"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

// NewUserUseCase создает сервис чтения пользователя и его профиля.
func NewUserUseCase(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile возвращает пользователя и его профиль. Если строки профиля нет, профиль пустой.
func (u *UserUseCaseImpl) GetProfile(ctx context.Context, userID string) (*entities.User, *entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}
	if profile == nil {
		profile = &entities.Profile{UserID: userID}
	}

	log.Info(ctx, msgProfileRetrieved)
	return user, profile, nil
}
