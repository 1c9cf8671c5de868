// Package storage removes product images from the asset bucket.
package storage

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"artisan/config"
	"artisan/internal/domain/service"
	"artisan/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets for local development
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets in production
	_ "gocloud.dev/blob/memblob"  // mem:// buckets for tests
	"gocloud.dev/gcerrors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// New opens the configured asset bucket. Without a bucket URL image deletion is a no-op.
func New(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Assets
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Asset bucket not configured, image deletion disabled")

		return noopStorage{}, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open asset bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStorage(bucket, cfg.PublicBaseURL), nil
}

// NewBlobStorage wraps an open bucket. publicBaseURL is the prefix image URLs
// are served under; the remainder of the URL is the object key.
func NewBlobStorage(bucket *blob.Bucket, publicBaseURL string) service.ImageStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// DeleteImage deletes the object behind imageURL. Missing objects are ignored.
func (s *blobStorage) DeleteImage(ctx context.Context, imageURL string) error {
	key, err := s.objectKey(imageURL)
	if err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete image %s", key)
	}

	return nil
}

func (s *blobStorage) objectKey(imageURL string) (string, error) {
	if s.publicBaseURL != "" && strings.HasPrefix(imageURL, s.publicBaseURL+"/") {
		return strings.TrimPrefix(imageURL, s.publicBaseURL+"/"), nil
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid image url %q", imageURL)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", errors.Errorf("image url %q has no object key", imageURL)
	}

	return key, nil
}

type noopStorage struct{}

func (noopStorage) DeleteImage(context.Context, string) error {
	return nil
}
