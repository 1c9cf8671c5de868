package postgres

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/persistence/model"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sellerRepository implements the repository.SellerRepository interface.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{
		db: db,
	}
}

// FindSellerByID retrieves a seller profile by ID.
func (repo *sellerRepository) FindSellerByID(ctx context.Context, id string) (*entity.Seller, error) {
	var sellerM model.SellerModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sellerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrSellerNotFound
		}

		return nil, storeError(err, "failed to find seller by ID")
	}

	return toSellerDomain(&sellerM), nil
}

// FindSellersByIDs loads every listed seller in one query.
func (repo *sellerRepository) FindSellersByIDs(ctx context.Context, ids []string) (map[string]*entity.Seller, error) {
	sellers := make(map[string]*entity.Seller, len(ids))
	if len(ids) == 0 {
		return sellers, nil
	}

	var sellerModels []*model.SellerModel
	if err := repo.db.WithContext(ctx).
		Where("id = ANY(?)", pq.StringArray(ids)).
		Find(&sellerModels).Error; err != nil {
		return nil, storeError(err, "failed to find sellers")
	}

	for _, sellerM := range sellerModels {
		sellers[sellerM.ID] = toSellerDomain(sellerM)
	}

	return sellers, nil
}

// toSellerDomain converts a GORM SellerModel to a domain Seller entity.
func toSellerDomain(data *model.SellerModel) *entity.Seller {
	if data == nil {
		return nil
	}

	return &entity.Seller{
		ID:          data.ID,
		Name:        data.Name,
		City:        data.City,
		State:       data.State,
		Rating:      data.Rating,
		Verified:    data.Verified,
		TotalSales:  data.TotalSales,
		MemberSince: data.MemberSince,
	}
}
