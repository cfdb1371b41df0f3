// Package cache описывает порт key-value кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковый key-value кэш. Get возвращает ("", false, nil) при промахе.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Close() error
}
