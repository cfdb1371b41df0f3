package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"authgate/internal/auth/domain/entities"
	"authgate/internal/auth/ports/cache"
	"authgate/internal/auth/ports/repositories"
	"authgate/pkg/logger"
	"authgate/pkg/resilience"
)

const (
	keyPrefixID       = "auth:user:id:"
	keyPrefixUsername = "auth:user:username:"
	keyPrefixEmail    = "auth:user:email:"
)

type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository кэширует найденных пользователей перед основным репозиторием.
// Кэшируются только попадания: пользователи не меняются и не удаляются,
// поэтому запись в кэше не устаревает, а промах всегда идет в базу.
// Ошибки Redis не прерывают запрос, а после серии ошибок breaker на время отключает кэш.
type UserRepository struct {
	next    repositories.UserRepository
	cache   cache.Cache
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

// NewUserRepository оборачивает next кэшем c. ttl == 0 - TTL кэша по умолчанию,
// nil breaker - breaker с настройками по умолчанию.
func NewUserRepository(
	next repositories.UserRepository,
	c cache.Cache,
	ttl time.Duration,
	breaker *resilience.CircuitBreaker,
) repositories.UserRepository {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker("user_cache", resilience.DefaultBreakerConfig())
	}
	return &UserRepository{next: next, cache: c, ttl: ttl, breaker: breaker}
}

// Create сохраняет пользователя и сразу кладет его в кэш.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created, err := r.next.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.store(ctx, created)
	return created, nil
}

// FindByID ищет по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.lookup(ctx, keyPrefixID+id, func() (*entities.User, error) {
		return r.next.FindByID(ctx, id)
	})
}

// FindByUsername ищет по имени пользователя.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.lookup(ctx, keyPrefixUsername+username, func() (*entities.User, error) {
		return r.next.FindByUsername(ctx, username)
	})
}

// FindByEmail ищет по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.lookup(ctx, keyPrefixEmail+email, func() (*entities.User, error) {
		return r.next.FindByEmail(ctx, email)
	})
}

func (r *UserRepository) lookup(ctx context.Context, key string, load func() (*entities.User, error)) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("key", key))

	var raw string
	var ok bool
	err := r.breaker.Execute(ctx, func() error {
		var getErr error
		raw, ok, getErr = r.cache.Get(ctx, key)
		return getErr
	})
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		log.Debug(ctx, "cache bypassed, circuit open")
	case err != nil:
		log.Warn(ctx, "cache read failed, falling back to store", zap.Error(err))
	case ok:
		var cu cachedUser
		if err := json.Unmarshal([]byte(raw), &cu); err == nil {
			log.Debug(ctx, "cache hit")
			return cu.toEntity(), nil
		}
		log.Warn(ctx, "cache entry is corrupted, ignoring")
	}

	user, err := load()
	if err != nil {
		return nil, err
	}

	r.store(ctx, user)
	return user, nil
}

func (r *UserRepository) store(ctx context.Context, user *entities.User) {
	payload, err := json.Marshal(fromEntity(user))
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to encode user for cache", zap.Error(err))
		return
	}

	for _, key := range []string{
		keyPrefixID + user.ID,
		keyPrefixUsername + user.Username,
		keyPrefixEmail + user.Email,
	} {
		err := r.breaker.Execute(ctx, func() error {
			return r.cache.Set(ctx, key, string(payload), r.ttl)
		})
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return
		}
		if err != nil {
			logger.Log(ctx).Warn(ctx, "failed to populate user cache", zap.String("key", key), zap.Error(err))
		}
	}
}

func fromEntity(u *entities.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c cachedUser) toEntity() *entities.User {
	return &entities.User{
		ID:           c.ID,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
