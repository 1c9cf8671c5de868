package memory

import (
	"context"

	"artisan/internal/domain/entity"
	"artisan/internal/domain/repository"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository returns a ReviewRepository backed by store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (repo *reviewRepository) FindReviewsByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	reviews := make([]*entity.Review, 0, len(repo.store.reviews[productID]))
	for _, review := range repo.store.reviews[productID] {
		cp := *review
		reviews = append(reviews, &cp)
	}

	return reviews, nil
}
