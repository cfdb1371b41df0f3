package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig - настройки кэша пользователей. При Enabled=false кэш не подключается.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"AUTH_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"AUTH_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"AUTH_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"AUTH_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"AUTH_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"AUTH_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"AUTH_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"AUTH_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"AUTH_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"AUTH_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"AUTH_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"AUTH_REDIS_DEFAULT_TTL" env-default:"15m"`
}

// GetAddress возвращает адрес Redis в виде host:port.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
