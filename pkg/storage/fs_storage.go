package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FSStorage implements ObjectStorage on the local filesystem. Intended for
// development; PictureURL returns a path under the configured base URL that
// the server must serve statically.
type FSStorage struct {
	baseDir string
	baseURL string
}

// NewFSStorage creates a filesystem-backed picture store rooted at baseDir
func NewFSStorage(baseDir, baseURL string) (*FSStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FSStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// UploadPicture validates and writes a picture under the owner's directory
func (s *FSStorage) UploadPicture(ctx context.Context, ownerID uuid.UUID, file io.Reader, fileSize int64, contentType string) (string, error) {
	if fileSize > MaxPictureSize {
		return "", ErrFileTooBig
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, allowed := allowedContentTypes[contentType]
	if !allowed {
		return "", ErrInvalidFileType
	}

	objectKey := filepath.Join(ownerID.String(), uuid.New().String()+ext)
	fullPath := filepath.Join(s.baseDir, objectKey)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create picture file: %w", err)
	}
	defer out.Close()

	if _, err := io.CopyN(out, file, fileSize); err != nil && err != io.EOF {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write picture file: %w", err)
	}

	return filepath.ToSlash(objectKey), nil
}

// DeletePicture removes a picture file; an empty key is a no-op
func (s *FSStorage) DeletePicture(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(objectKey)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete picture: %w", err)
	}
	return nil
}

// PictureURL returns the static URL the picture is served under
func (s *FSStorage) PictureURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", fmt.Errorf("empty object key")
	}
	return s.baseURL + "/" + objectKey, nil
}
