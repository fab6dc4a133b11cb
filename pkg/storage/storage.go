package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

const (
	// MaxPictureSize caps contact picture uploads at 5 MB
	MaxPictureSize = 5 * 1024 * 1024
)

var (
	ErrFileTooBig      = errors.New("file size exceeds 5MB limit")
	ErrInvalidFileType = errors.New("invalid file type, only JPEG and PNG images are allowed")
	ErrObjectNotFound  = errors.New("object not found")
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ObjectStorage stores contact pictures. Keys are opaque to callers; the
// implementation decides layout.
type ObjectStorage interface {
	// UploadPicture stores a picture owned by the given user and returns
	// its object key.
	UploadPicture(ctx context.Context, ownerID uuid.UUID, file io.Reader, fileSize int64, contentType string) (string, error)

	// DeletePicture removes a picture by object key. Empty keys are a no-op.
	DeletePicture(ctx context.Context, objectKey string) error

	// PictureURL returns a URL the picture can be fetched from.
	PictureURL(ctx context.Context, objectKey string) (string, error)
}
