package config

// CORSConfig - разрешенные источники для /api/*.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" env:"AUTH_CORS_ALLOW_ORIGINS" env-default:"*" env-separator:","`
}
