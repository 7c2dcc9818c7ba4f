package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/secondchance/apiserver/config"
)

// ErrObjectNotFound is returned when no object exists under a key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectBackend defines common object operations across backends.
type ObjectBackend interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get opens a reader for an object and reports its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// ImageStore stores gift images in an object backend. It owns the key
// layout: one image per gift, keyed by the gift's business id.
type ImageStore struct {
	backend ObjectBackend
}

// NewImageStore constructs an ImageStore over the provided backend.
func NewImageStore(backend ObjectBackend) *ImageStore {
	return &ImageStore{backend: backend}
}

// EnsureBucket ensures the configured bucket exists.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// PutGiftImage uploads the image for a gift and returns the object key.
func (s *ImageStore) PutGiftImage(ctx context.Context, giftID string, r io.Reader, size int64, contentType string) (string, error) {
	key := imageKey(giftID)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// GetGiftImage opens a reader for a gift's image and reports its content
// type.
func (s *ImageStore) GetGiftImage(ctx context.Context, giftID string) (io.ReadCloser, string, error) {
	return s.backend.Get(ctx, imageKey(giftID))
}

// DeleteGiftImage removes a gift's image, if any.
func (s *ImageStore) DeleteGiftImage(ctx context.Context, giftID string) error {
	return s.backend.Delete(ctx, imageKey(giftID))
}

func imageKey(giftID string) string {
	return "gifts/" + giftID
}

// NewFromConfig wires the configured backend into an ImageStore. Returns
// nil when image storage is disabled.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (*ImageStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "none":
		return nil, nil
	case "minio":
		backend, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return NewImageStore(backend), nil
	case "gcs":
		backend, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return NewImageStore(backend), nil
	default:
		return nil, errors.New("unknown storage backend: " + cfg.Backend)
	}
}
