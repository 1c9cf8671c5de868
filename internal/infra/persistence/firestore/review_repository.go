package firestore

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"cloud.google.com/go/firestore"
)

type reviewRepository struct {
	docs
}

// NewReviewRepository returns a ReviewRepository backed by the reviews collection.
func NewReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &reviewRepository{docs: docs{client: client}}
}

func (repo *reviewRepository) FindReviewsByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	q := repo.client.Collection(collectionReviews).
		Where("productId", "==", productID).
		OrderBy("createdAt", firestore.Desc)

	snaps, err := repo.query(ctx, q)
	if err != nil {
		return nil, storeError(err, "failed to find reviews")
	}

	reviews := make([]*entity.Review, 0, len(snaps))
	for _, snap := range snaps {
		var doc reviewDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, domainerrors.NewStoreUnavailableError(err, "failed to decode review "+snap.Ref.ID)
		}
		reviews = append(reviews, &entity.Review{
			ID:        snap.Ref.ID,
			ProductID: doc.ProductID,
			UserID:    doc.UserID,
			Rating:    doc.Rating,
			Comment:   doc.Comment,
			CreatedAt: doc.CreatedAt,
		})
	}

	return reviews, nil
}
