// Package app содержит сценарии регистрации, входа и чтения профиля.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"authgate/internal/auth/domain/entities"
	"authgate/internal/auth/domain/services"
	"authgate/internal/auth/ports/api"
	"authgate/internal/auth/ports/repositories"
	svc "authgate/internal/auth/ports/services"
	"authgate/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodIssueToken     = "issueToken"
	msgStartRegistration = "starting user registration"
	msgValidationFailed  = "registration input rejected"
	msgUsernameTaken     = "username already taken"
	msgEmailTaken        = "email already registered"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgLoginRejected     = "login input rejected"
	msgUnknownIdentifier = "login attempt with unknown identifier"
	msgWrongPassword     = "invalid password provided"
	msgUserLoggedIn      = "user logged in successfully"
	msgTokenIssued       = "access token issued"

	msgErrCheckUsername  = "failed to check existing username"
	msgErrCheckEmail     = "failed to check existing email"
	msgErrHashPassword   = "failed to hash password"
	msgErrCreateUser     = "failed to create user"
	msgErrFindingUser    = "error finding user"
	msgErrVerifyPassword = "error verifying password"
	msgErrGenerateToken  = "failed to generate access token"

	errCtxValidating        = "validating input"
	errCtxCheckingUsername  = "checking existing username"
	errCtxCheckingEmail     = "checking existing email"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxGeneratingToken   = "generating token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxAuthenticating    = "authenticating"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase собирает сервис учетных данных из явных зависимостей.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает пользователя и выпускает для него токен.
// Ошибки валидации и уникальности оборачивают *entities.Error.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, email, password string) (*services.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if err := ValidateRegistration(username, email, password); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	if _, err := a.userRepo.FindByUsername(ctx, username); err == nil {
		log.Debug(ctx, msgUsernameTaken)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, entities.ErrUsernameTaken)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
	}

	if _, err := a.userRepo.FindByEmail(ctx, email); err == nil {
		log.Debug(ctx, msgEmailTaken)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailTaken)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	// Уникальные ограничения в базе закрывают гонку между проверками и вставкой:
	// репозиторий возвращает те же ErrUsernameTaken/ErrEmailTaken.
	created, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			log.Debug(ctx, "unique constraint rejected concurrent registration", zap.Error(err))
		} else {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))

	return a.issueToken(ctx, created)
}

// Login находит пользователя по имени, затем по email в нижнем регистре, и проверяет пароль.
// Неизвестный пользователь и неверный пароль дают одну и ту же entities.ErrInvalidCredentials.
func (a *AuthUseCaseImpl) Login(ctx context.Context, identifier, password string) (*services.AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("identifier", identifier))
	log.Debug(ctx, msgLoginAttempt)

	if err := ValidateLogin(identifier, password); err != nil {
		log.Debug(ctx, msgLoginRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	user, err := a.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUnknownIdentifier)
			return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, entities.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	return a.issueToken(ctx, user)
}

func (a *AuthUseCaseImpl) findByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	user, err := a.userRepo.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, err
	}

	return a.userRepo.FindByEmail(ctx, strings.ToLower(identifier))
}

func (a *AuthUseCaseImpl) issueToken(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssueToken), zap.String("userID", user.ID))

	token, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))

	return &services.AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
