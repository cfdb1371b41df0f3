package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"authgate/internal/auth/domain/entities"
	"authgate/internal/auth/ports/repositories"
	"authgate/pkg/logger"
)

// Коды ошибок и имена ограничений Postgres, см. migrations/auth.
const (
	codeUniqueViolation           = "23505"
	codeExclusionViolation        = "23P01"
	codeInvalidTextRepresentation = "22P02"

	constraintUsernameKey = "users_username_key"
	constraintEmailKey    = "users_email_key"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// PgxPoolInterface - часть pgxpool.Pool, нужная репозиториям. Реализуется pgxmock в тестах.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
}

// UserRepository реализует repositories.UserRepository поверх Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create вставляет пользователя. Нарушение уникальности превращается в ErrUsernameTaken или ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash))
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			log.Debug(ctx, "unique constraint violated", zap.Error(err))
			return nil, conflict
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByUsername находит пользователя по точному имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "FindByUsername", "username", username)
}

// FindByEmail находит пользователя по email. Email хранится в нижнем регистре.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// column всегда константа из этого файла.
func (r *UserRepository) findOne(ctx context.Context, method, column, value string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE ` + column + ` = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			log.Debug(ctx, "user not found", zap.String(column, value))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.String("by", column), zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", column, err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	if pgErr.Code != codeUniqueViolation && pgErr.Code != codeExclusionViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintUsernameKey:
		return entities.ErrUsernameTaken
	case constraintEmailKey:
		return entities.ErrEmailTaken
	default:
		return nil
	}
}

// isInvalidText - строка, не являющаяся UUID, в условии по id.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation
}
