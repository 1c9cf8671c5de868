package service

import "context"

// ImageStorage removes uploaded product images. Uploading is handled elsewhere.
type ImageStorage interface {
	// DeleteImage removes the asset referenced by url. A missing asset is not an error.
	DeleteImage(ctx context.Context, url string) error
}
