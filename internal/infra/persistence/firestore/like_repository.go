package firestore

import (
	"context"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

type likeRepository struct {
	docs
}

// NewLikeRepository returns a LikeRepository backed by the likes collection.
// Like documents are keyed by entity.LikeKey so creation is a conditional write.
func NewLikeRepository(client *firestore.Client) repository.LikeRepository {
	return &likeRepository{docs: docs{client: client}}
}

func (repo *likeRepository) ref(userID, productID string) *firestore.DocumentRef {
	return repo.client.Collection(collectionLikes).Doc(entity.LikeKey(userID, productID))
}

func (repo *likeRepository) ExistsLike(ctx context.Context, userID, productID string) (bool, error) {
	snap, err := repo.get(ctx, repo.ref(userID, productID))
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, storeError(err, "failed to check like")
	}

	return snap.Exists(), nil
}

// CreateLike fails with ErrDuplicateLike when the document exists. Inside a
// transaction the conflict surfaces at commit.
func (repo *likeRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}

	err := repo.create(ctx, repo.ref(like.UserID, like.ProductID), &likeDoc{
		UserID:    like.UserID,
		ProductID: like.ProductID,
		CreatedAt: like.CreatedAt,
	})
	if err != nil {
		return storeError(err, "failed to create like")
	}

	return nil
}

func (repo *likeRepository) DeleteLike(ctx context.Context, userID, productID string) error {
	if err := repo.delete(ctx, repo.ref(userID, productID)); err != nil && !isNotFound(err) {
		return storeError(err, "failed to delete like")
	}

	return nil
}

func (repo *likeRepository) CountLikesByProduct(ctx context.Context, productID string) (int, error) {
	q := repo.client.Collection(collectionLikes).Where("productId", "==", productID)

	// Aggregations are not available inside transactions.
	if repo.tx != nil {
		snaps, err := repo.query(ctx, q)
		if err != nil {
			return 0, storeError(err, "failed to count likes")
		}

		return len(snaps), nil
	}

	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, storeError(err, "failed to count likes")
	}

	value, ok := results["all"].(*firestorepb.Value)
	if !ok {
		return 0, domainerrors.NewStoreUnavailableError(nil, "unexpected count aggregation result")
	}

	return int(value.GetIntegerValue()), nil
}
