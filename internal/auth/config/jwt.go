package config

import "time"

const defaultAccessTokenTTL = 15 * time.Minute

// JWTConfig содержит настройки токенов и стоимость bcrypt.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"AUTH_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"AUTH_JWT_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL разбирает TTL токена. Некорректное или неположительное значение дает 15 минут.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || d <= 0 {
		return defaultAccessTokenTTL
	}
	return d
}
