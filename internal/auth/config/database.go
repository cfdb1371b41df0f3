package config

import (
	"fmt"
	"net/url"
	"time"
)

// PostgresConfig содержит настройки подключения к базе и путь к миграциям.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"AUTH_POSTGRES_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"AUTH_POSTGRES_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"AUTH_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"AUTH_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"AUTH_POSTGRES_DB" env-default:"auth"`
	MinConn       int    `yaml:"min_conn" env:"AUTH_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"AUTH_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"AUTH_MIGRATIONS_DIR" env-default:"migrations/auth"`

	// Повторы при старте, пока база еще поднимается.
	ConnectAttempts int           `yaml:"connect_attempts" env:"AUTH_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" env:"AUTH_POSTGRES_CONNECT_BACKOFF" env-default:"1s"`
}

// GetDSN возвращает строку подключения для pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL подключения для golang-migrate.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
