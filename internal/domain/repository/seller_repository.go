package repository

import (
	"context"

	"artisan/internal/domain/entity"
)

// SellerRepository is the read-only view of seller profiles used by the catalog.
type SellerRepository interface {
	// FindSellerByID returns domainerrors.ErrSellerNotFound when the seller does not exist.
	FindSellerByID(ctx context.Context, id string) (*entity.Seller, error)

	// FindSellersByIDs loads many sellers at once. Unknown IDs are absent from the map.
	FindSellersByIDs(ctx context.Context, ids []string) (map[string]*entity.Seller, error)
}
