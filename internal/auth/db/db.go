// Package db поднимает базу сервиса аутентификации: применяет миграции и открывает пул.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"authgate/internal/auth/config"
	"authgate/pkg/db/postgres"
	"authgate/pkg/logger"
	"authgate/pkg/resilience"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing authentication database"
	LogDBInitialized     = "authentication database initialized successfully"
	LogMigrationStarting = "starting database migrations for authentication service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply authentication database migrations"
	ErrDBConnection = "failed to connect to authentication database"
	ErrGetPath      = "failed to get path"
)

// DB - соединение с базой сервиса авторизации.
type DB struct {
	database *postgres.Database
}

// maxConnectBackoff ограничивает рост задержки между попытками подключения.
const maxConnectBackoff = 30 * time.Second

// New применяет миграции из cfg.MigrationsDir и открывает пул соединений.
// Оба шага повторяются до cfg.ConnectAttempts раз.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsSource(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retry := resilience.NewRetry("postgres", resilience.RetryConfig{
		MaxAttempts:    cfg.ConnectAttempts,
		InitialBackoff: cfg.ConnectBackoff,
		MaxBackoff:     maxConnectBackoff,
		BackoffFactor:  2,
	})

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := retry.Execute(ctx, func(ctx context.Context) error {
		return postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	if err := retry.Execute(ctx, func(ctx context.Context) error {
		var err error
		database, err = postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsSource превращает каталог миграций в абсолютный file:// URL.
func MigrationsSource(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// Close закрывает пул. Сигнатура подходит для shutdown.Hook.
func (db *DB) Close(ctx context.Context) error {
	db.database.Close(ctx)
	return nil
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
