package firestore

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"cloud.google.com/go/firestore"
)

type sellerRepository struct {
	docs
}

// NewSellerRepository returns a SellerRepository backed by the sellers collection.
func NewSellerRepository(client *firestore.Client) repository.SellerRepository {
	return &sellerRepository{docs: docs{client: client}}
}

func (repo *sellerRepository) FindSellerByID(ctx context.Context, id string) (*entity.Seller, error) {
	snap, err := repo.get(ctx, repo.client.Collection(collectionSellers).Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrSellerNotFound
		}

		return nil, storeError(err, "failed to find seller by ID")
	}

	var doc sellerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "failed to decode seller "+id)
	}

	return toSellerDomain(id, &doc), nil
}

// FindSellersByIDs batches the lookups into a single GetAll round trip.
func (repo *sellerRepository) FindSellersByIDs(ctx context.Context, ids []string) (map[string]*entity.Seller, error) {
	sellers := make(map[string]*entity.Seller, len(ids))
	if len(ids) == 0 {
		return sellers, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, repo.client.Collection(collectionSellers).Doc(id))
	}

	snaps, err := repo.getAll(ctx, refs)
	if err != nil {
		return nil, storeError(err, "failed to find sellers")
	}

	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var doc sellerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, domainerrors.NewStoreUnavailableError(err, "failed to decode seller "+snap.Ref.ID)
		}
		sellers[snap.Ref.ID] = toSellerDomain(snap.Ref.ID, &doc)
	}

	return sellers, nil
}
