package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Cache is a shared key-value slot with per-key TTLs
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

var (
	// ErrCacheMiss is returned when a key is absent or expired
	ErrCacheMiss = fmt.Errorf("cache miss")
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = fmt.Errorf("cache is disabled")
)

// HashKey builds a short stable key from its parts
func HashKey(parts ...string) string {
	joined := strings.Join(parts, ":")
	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}
