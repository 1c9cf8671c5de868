package repository

import (
	"context"

	"artisan/internal/domain/entity"
)

// ReviewRepository reads product reviews.
type ReviewRepository interface {
	FindReviewsByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
}
