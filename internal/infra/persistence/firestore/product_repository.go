package firestore

import (
	"context"
	"slices"
	"strings"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/shopspring/decimal"
)

type productRepository struct {
	docs
}

// NewProductRepository returns a ProductRepository backed by the products collection.
func NewProductRepository(client *firestore.Client) repository.ProductRepository {
	return &productRepository{docs: docs{client: client}}
}

func (repo *productRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(collectionProducts)
}

func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	ref := repo.collection().NewDoc()
	if product.ID != "" {
		ref = repo.collection().Doc(product.ID)
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if err := repo.create(ctx, ref, fromProductDomain(product)); err != nil {
		return storeError(err, "failed to create product")
	}
	product.ID = ref.ID

	return nil
}

func (repo *productRepository) FindProductByID(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := repo.get(ctx, repo.collection().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, storeError(err, "failed to find product by ID")
	}

	return decodeProduct(snap)
}

func (repo *productRepository) FindProducts(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, error) {
	q := buildProductQuery(repo.collection().Query, query)
	// A range filter on price forces the first ordering onto price, so a
	// limited price query is ordered and truncated after the fetch.
	pushLimit := query.Limit > 0 && query.MinPrice == nil && query.MaxPrice == nil
	if pushLimit {
		q = q.OrderBy("createdAt", firestore.Desc).Limit(query.Limit)
	}

	snaps, err := repo.query(ctx, q)
	if err != nil {
		return nil, storeError(err, "failed to find products")
	}

	products := make([]*entity.Product, 0, len(snaps))
	for _, snap := range snaps {
		product, err := decodeProduct(snap)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if query.Limit > 0 && !pushLimit {
		products = newest(products, query.Limit)
	}

	return products, nil
}

// CountProducts runs a server-side count aggregation.
func (repo *productRepository) CountProducts(ctx context.Context, query repository.ProductQuery) (int, error) {
	q := buildProductQuery(repo.collection().Query, query)

	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, storeError(err, "failed to count products")
	}

	value, ok := results["all"].(*firestorepb.Value)
	if !ok {
		return 0, domainerrors.NewStoreUnavailableError(nil, "unexpected count aggregation result")
	}

	return int(value.GetIntegerValue()), nil
}

func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now().UTC()
	doc := fromProductDomain(product)

	updates := []firestore.Update{
		{Path: "name", Value: doc.Name},
		{Path: "description", Value: doc.Description},
		{Path: "price", Value: doc.Price},
		{Path: "originalPrice", Value: originalPriceValue(doc.OriginalPrice)},
		{Path: "category", Value: doc.Category},
		{Path: "tags", Value: doc.Tags},
		{Path: "materials", Value: doc.Materials},
		{Path: "dimensions", Value: doc.Dimensions},
		{Path: "stockCount", Value: doc.StockCount},
		{Path: "images", Value: doc.Images},
		{Path: "isActive", Value: doc.IsActive},
		{Path: "deletedAt", Value: deletedAtValue(doc.DeletedAt)},
		{Path: "updatedAt", Value: doc.UpdatedAt},
	}

	if err := repo.update(ctx, repo.collection().Doc(product.ID), updates); err != nil {
		if isNotFound(err) {
			return domainerrors.ErrProductNotFound
		}

		return storeError(err, "failed to update product")
	}

	return nil
}

func (repo *productRepository) SetLikeCount(ctx context.Context, id string, count int) error {
	err := repo.update(ctx, repo.collection().Doc(id), []firestore.Update{
		{Path: "likeCount", Value: count},
	})
	if err != nil {
		if isNotFound(err) {
			return domainerrors.ErrProductNotFound
		}

		return storeError(err, "failed to set like count")
	}

	return nil
}

func (repo *productRepository) SoftDeleteProduct(ctx context.Context, id string, at time.Time) error {
	err := repo.update(ctx, repo.collection().Doc(id), []firestore.Update{
		{Path: "isActive", Value: false},
		{Path: "deletedAt", Value: at},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return domainerrors.ErrProductNotFound
		}

		return storeError(err, "failed to delete product")
	}

	return nil
}

// buildProductQuery pushes the equality filters and the price range down.
// Firestore allows range filters on a single field, which price is.
func buildProductQuery(q firestore.Query, query repository.ProductQuery) firestore.Query {
	if query.IsActive != nil {
		q = q.Where("isActive", "==", *query.IsActive)
	}
	if !query.Category.IsAll() {
		q = q.Where("category", "==", query.Category.String())
	}
	if query.SellerID != "" {
		q = q.Where("sellerId", "==", query.SellerID)
	}
	if query.MinPrice != nil {
		q = q.Where("price", ">=", priceBound(*query.MinPrice))
	}
	if query.MaxPrice != nil {
		q = q.Where("price", "<=", priceBound(*query.MaxPrice))
	}

	return q
}

func newest(products []*entity.Product, limit int) []*entity.Product {
	slices.SortFunc(products, func(a, b *entity.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})
	if len(products) > limit {
		products = products[:limit]
	}

	return products
}

func priceBound(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func originalPriceValue(p *float64) any {
	if p == nil {
		return firestore.Delete
	}

	return *p
}

func deletedAtValue(at *time.Time) any {
	if at == nil {
		return firestore.Delete
	}

	return *at
}

func decodeProduct(snap *firestore.DocumentSnapshot) (*entity.Product, error) {
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "failed to decode product "+snap.Ref.ID)
	}

	return toProductDomain(snap.Ref.ID, &doc), nil
}
