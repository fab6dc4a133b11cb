package pending

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreConfig contains configuration for creating a pending registration store
type StoreConfig struct {
	// TTL bounds how long an uncommitted registration survives
	TTL time.Duration
	// SweepInterval is used by the in-memory store's expiry sweep
	SweepInterval time.Duration
	// Client is required for Redis-backed stores
	Client redis.UniversalClient
	// KeyPrefix namespaces Redis keys
	KeyPrefix string
}

// NewPendingStore creates a pending registration store based on the persistence type
func NewPendingStore(persistenceType string, config StoreConfig) (Store, error) {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	switch persistenceType {
	case "redis":
		if config.Client == nil {
			return nil, fmt.Errorf("client required for redis store")
		}
		return NewRedisStore(config.Client, config.KeyPrefix, ttl), nil
	case "memory":
		sweep := config.SweepInterval
		if sweep <= 0 {
			sweep = time.Minute
		}
		return NewInMemStore(ttl, sweep), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: redis, memory)", persistenceType)
	}
}
