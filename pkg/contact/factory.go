package contact

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds the configuration for creating a contact repository
type RepositoryConfig struct {
	Pool *pgxpool.Pool
}

// NewContactRepository creates a repository for the given persistence type
func NewContactRepository(persistenceType string, cfg RepositoryConfig) (Repository, error) {
	switch persistenceType {
	case "postgres":
		if cfg.Pool == nil {
			return nil, fmt.Errorf("postgres persistence requires a connection pool")
		}
		return NewPostgresRepository(cfg.Pool), nil
	case "memory":
		return NewInMemRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", persistenceType)
	}
}
