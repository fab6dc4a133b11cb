package sessions

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RepositoryConfig holds the configuration for creating a session repository
type RepositoryConfig struct {
	Client    redis.UniversalClient
	KeyPrefix string
}

// NewSessionRepository creates a repository for the given persistence type
func NewSessionRepository(persistenceType string, cfg RepositoryConfig) (Repository, error) {
	switch persistenceType {
	case "redis":
		if cfg.Client == nil {
			return nil, fmt.Errorf("redis persistence requires a client")
		}
		return NewRedisRepository(cfg.Client, cfg.KeyPrefix), nil
	case "memory":
		return NewInMemRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", persistenceType)
	}
}
