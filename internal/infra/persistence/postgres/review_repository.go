package postgres

import (
	"context"

	"artisan/internal/domain/entity"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// FindReviewsByProduct returns the reviews of a product, newest first.
func (repo *reviewRepository) FindReviewsByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, storeError(err, "failed to find reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, &entity.Review{
			ID:        reviewM.ID,
			ProductID: reviewM.ProductID,
			UserID:    reviewM.UserID,
			Rating:    reviewM.Rating,
			Comment:   reviewM.Comment,
			CreatedAt: reviewM.CreatedAt,
		})
	}

	return reviews, nil
}
