package memory

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
)

type sellerRepository struct {
	store *Store
}

// NewSellerRepository returns a SellerRepository backed by store.
func NewSellerRepository(store *Store) repository.SellerRepository {
	return &sellerRepository{store: store}
}

func (repo *sellerRepository) FindSellerByID(ctx context.Context, id string) (*entity.Seller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	seller, ok := repo.store.sellers[id]
	if !ok {
		return nil, domainerrors.ErrSellerNotFound
	}
	cp := *seller

	return &cp, nil
}

func (repo *sellerRepository) FindSellersByIDs(ctx context.Context, ids []string) (map[string]*entity.Seller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	sellers := make(map[string]*entity.Seller, len(ids))
	for _, id := range ids {
		if seller, ok := repo.store.sellers[id]; ok {
			cp := *seller
			sellers[id] = &cp
		}
	}

	return sellers, nil
}
