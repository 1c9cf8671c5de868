package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	store *Store
	undo  *undoLog
}

// NewProductRepository returns a ProductRepository backed by store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	repo.undo.recordProduct(product.ID, repo.store.products[product.ID])
	now := repo.store.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	repo.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (repo *productRepository) FindProductByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	product, ok := repo.store.products[id]
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func (repo *productRepository) FindProducts(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	products := make([]*entity.Product, 0)
	for _, product := range repo.store.products {
		if !matchesQuery(product, query) {
			continue
		}
		products = append(products, cloneProduct(product))
	}
	if query.Limit > 0 {
		products = newest(products, query.Limit)
	}

	return products, nil
}

func (repo *productRepository) CountProducts(ctx context.Context, query repository.ProductQuery) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	count := 0
	for _, product := range repo.store.products {
		if matchesQuery(product, query) {
			count++
		}
	}

	return count, nil
}

func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	prev, ok := repo.store.products[product.ID]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	repo.undo.recordProduct(product.ID, prev)
	product.UpdatedAt = repo.store.now()
	repo.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (repo *productRepository) SetLikeCount(ctx context.Context, id string, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	product, ok := repo.store.products[id]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	repo.undo.recordProduct(id, product)
	product.LikeCount = count

	return nil
}

func (repo *productRepository) SoftDeleteProduct(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	product, ok := repo.store.products[id]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	repo.undo.recordProduct(id, product)
	product.IsActive = false
	product.DeletedAt = &at
	product.UpdatedAt = at

	return nil
}

// newest orders products by creation time, newest first with ID as the
// tiebreak, and keeps at most limit of them.
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

func matchesQuery(product *entity.Product, query repository.ProductQuery) bool {
	if query.IsActive != nil && product.IsActive != *query.IsActive {
		return false
	}
	if !query.Category.IsAll() && product.Category != query.Category {
		return false
	}
	if query.SellerID != "" && product.SellerID != query.SellerID {
		return false
	}
	if query.MinPrice != nil && product.Price.LessThan(*query.MinPrice) {
		return false
	}
	if query.MaxPrice != nil && product.Price.GreaterThan(*query.MaxPrice) {
		return false
	}

	return true
}
