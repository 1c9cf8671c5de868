package repository

import (
	"context"

	"artisan/internal/domain/entity"
)

// LikeRepository stores the (user, product) like relation. At most one record
// exists per pair.
type LikeRepository interface {
	ExistsLike(ctx context.Context, userID, productID string) (bool, error)

	// CreateLike returns domainerrors.ErrDuplicateLike when the pair is already stored.
	CreateLike(ctx context.Context, like *entity.Like) error

	// DeleteLike removes the pair. Deleting a missing pair is not an error.
	DeleteLike(ctx context.Context, userID, productID string) error

	CountLikesByProduct(ctx context.Context, productID string) (int, error)
}
