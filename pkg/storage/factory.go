package storage

import "fmt"

// Config holds the settings for creating an object storage backend
type Config struct {
	MinIO   MinIOConfig
	BaseDir string
	BaseURL string
}

// NewObjectStorage creates storage for the given backend type
func NewObjectStorage(backendType string, cfg Config) (ObjectStorage, error) {
	switch backendType {
	case "minio":
		return NewMinIOStorage(cfg.MinIO)
	case "fs":
		return NewFSStorage(cfg.BaseDir, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backendType)
	}
}
