package postgres

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeRepository implements the repository.LikeRepository interface.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{
		db: db,
	}
}

// ExistsLike reports whether the user liked the product.
func (repo *likeRepository) ExistsLike(ctx context.Context, userID, productID string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, storeError(err, "failed to check like")
	}

	return count > 0, nil
}

// CreateLike inserts the pair. The unique index turns a concurrent duplicate into
// zero affected rows instead of an aborted transaction.
func (repo *likeRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	likeM := &model.LikeModel{
		UserID:    like.UserID,
		ProductID: like.ProductID,
		CreatedAt: like.CreatedAt,
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(likeM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDuplicateLike
		}

		return storeError(result.Error, "failed to create like")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDuplicateLike
	}

	like.CreatedAt = likeM.CreatedAt

	return nil
}

// DeleteLike removes the pair if present.
func (repo *likeRepository) DeleteLike(ctx context.Context, userID, productID string) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.LikeModel{}).Error; err != nil {
		return storeError(err, "failed to delete like")
	}

	return nil
}

// CountLikesByProduct counts the stored likes of a product.
func (repo *likeRepository) CountLikesByProduct(ctx context.Context, productID string) (int, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, storeError(err, "failed to count likes")
	}

	return int(count), nil
}
