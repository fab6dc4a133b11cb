package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	picturePathPrefix = "pictures"
	presignedURLTTL   = 15 * time.Minute
)

// MinIOStorage implements ObjectStorage on MinIO or any S3-compatible store
type MinIOStorage struct {
	client     *minio.Client
	bucketName string
}

// MinIOConfig holds the connection settings for MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIOStorage creates a MinIO-backed picture store and makes sure the
// bucket exists.
func NewMinIOStorage(cfg MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinIOStorage{
		client:     client,
		bucketName: cfg.Bucket,
	}

	if err := s.ensureBucketExists(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOStorage) ensureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadPicture validates and stores a picture under the owner's namespace
func (s *MinIOStorage) UploadPicture(ctx context.Context, ownerID uuid.UUID, file io.Reader, fileSize int64, contentType string) (string, error) {
	if fileSize > MaxPictureSize {
		return "", ErrFileTooBig
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, allowed := allowedContentTypes[contentType]
	if !allowed {
		return "", ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("%s/%s/%s%s", picturePathPrefix, ownerID, uuid.New(), ext)

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, file, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"Owner-ID":    ownerID.String(),
			"Uploaded-At": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload picture: %w", err)
	}

	return objectKey, nil
}

// DeletePicture removes a picture object; an empty key is a no-op
func (s *MinIOStorage) DeletePicture(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete picture: %w", err)
	}
	return nil
}

// PictureURL returns a presigned GET URL for the picture
func (s *MinIOStorage) PictureURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", fmt.Errorf("empty object key")
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, presignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate picture url: %w", err)
	}
	return presignedURL.String(), nil
}
