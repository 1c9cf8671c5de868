package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)

	return &d
}

func seededStore() *Store {
	store := NewStore()
	store.Seed(Fixture{
		Sellers: []*entity.Seller{{ID: "s1", Name: "Clay Studio"}},
		Products: []*entity.Product{
			{ID: "p1", SellerID: "s1", Category: entity.CategoryPottery, Price: decimal.RequireFromString("45.99"), IsActive: true, LikeCount: 5},
			{ID: "p2", SellerID: "s1", Category: entity.CategoryWoodwork, Price: decimal.RequireFromString("199.99"), IsActive: true},
			{ID: "p3", SellerID: "s2", Category: entity.CategoryPottery, Price: decimal.RequireFromString("12"), IsActive: false},
		},
		Reviews: []*entity.Review{{ID: "r1", ProductID: "p1", Rating: 4}},
	})

	return store
}

func TestProductRepository_FindProducts(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(seededStore())
	active := true

	tests := []struct {
		name  string
		query repository.ProductQuery
		want  []string
	}{
		{name: "all", query: repository.ProductQuery{}, want: []string{"p1", "p2", "p3"}},
		{name: "active", query: repository.ProductQuery{IsActive: &active}, want: []string{"p1", "p2"}},
		{name: "category", query: repository.ProductQuery{Category: entity.CategoryPottery}, want: []string{"p1", "p3"}},
		{name: "price range", query: repository.ProductQuery{MinPrice: dec("40"), MaxPrice: dec("100")}, want: []string{"p1"}},
		{name: "seller", query: repository.ProductQuery{SellerID: "s2"}, want: []string{"p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.FindProducts(ctx, tt.query)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(t, tt.want, ids)

			count, err := repo.CountProducts(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), count)
		})
	}
}

func TestProductRepository_FindProducts_LimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	products := make([]*entity.Product, 0, 8)
	for i := range 8 {
		products = append(products, &entity.Product{
			ID:        fmt.Sprintf("p%d", i),
			SellerID:  "s1",
			Category:  entity.CategoryGlass,
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	store.Seed(Fixture{Products: products})
	repo := NewProductRepository(store)

	for range 5 {
		got, err := repo.FindProducts(ctx, repository.ProductQuery{SellerID: "s1", Limit: 3})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"p7", "p6", "p5"}, []string{got[0].ID, got[1].ID, got[2].ID})
	}
}

func TestProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(seededStore())

	p, err := repo.FindProductByID(ctx, "p1")
	require.NoError(t, err)
	p.LikeCount = 100

	again, err := repo.FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.LikeCount)
}

func TestProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(seededStore())

	_, err := repo.FindProductByID(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.ErrorIs(t, repo.SetLikeCount(ctx, "missing", 1), domainerrors.ErrProductNotFound)
	assert.ErrorIs(t, repo.SoftDeleteProduct(ctx, "missing", time.Now()), domainerrors.ErrProductNotFound)
}

func TestProductRepository_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())

	p := &entity.Product{Name: "Bowl", Price: decimal.NewFromInt(10), IsActive: true}
	require.NoError(t, repo.CreateProduct(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestLikeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLikeRepository(seededStore())

	require.NoError(t, repo.CreateLike(ctx, &entity.Like{UserID: "u1", ProductID: "p1"}))
	assert.ErrorIs(t, repo.CreateLike(ctx, &entity.Like{UserID: "u1", ProductID: "p1"}), domainerrors.ErrDuplicateLike)

	exists, err := repo.ExistsLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.CreateLike(ctx, &entity.Like{UserID: "u2", ProductID: "p1"}))
	count, err := repo.CountLikesByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.DeleteLike(ctx, "u1", "p1"))
	require.NoError(t, repo.DeleteLike(ctx, "u1", "p1"))
	exists, err = repo.ExistsLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSellerRepository_FindSellersByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewSellerRepository(seededStore())

	sellers, err := repo.FindSellersByIDs(ctx, []string{"s1", "unknown"})
	require.NoError(t, err)
	assert.Len(t, sellers, 1)
	assert.Equal(t, "Clay Studio", sellers["s1"].Name)

	_, err = repo.FindSellerByID(ctx, "unknown")
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	tm := NewTransactionManager(store)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(ctx context.Context, f repository.RepositoryFactory) error {
		require.NoError(t, f.NewLikeRepository().CreateLike(ctx, &entity.Like{UserID: "u1", ProductID: "p1"}))
		require.NoError(t, f.NewProductRepository().SetLikeCount(ctx, "p1", 6))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := NewLikeRepository(store).ExistsLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	p, err := NewProductRepository(store).FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.LikeCount)
}

func TestTransactionManager_RollbackKeepsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	tm := NewTransactionManager(store)
	products := NewProductRepository(store)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(ctx context.Context, f repository.RepositoryFactory) error {
		require.NoError(t, f.NewProductRepository().SetLikeCount(ctx, "p1", 9))
		require.NoError(t, products.CreateProduct(ctx, &entity.Product{ID: "p9", SellerID: "s1", Name: "Bowl", IsActive: true}))
		require.NoError(t, products.SetLikeCount(ctx, "p9", 3))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	p1, err := products.FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p1.LikeCount)

	p9, err := products.FindProductByID(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "Bowl", p9.Name)
	assert.Equal(t, 3, p9.LikeCount)
}

func TestTransactionManager_RollsBackCreatedProductAndDeletedLike(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	likes := NewLikeRepository(store)
	require.NoError(t, likes.CreateLike(ctx, &entity.Like{UserID: "u9", ProductID: "p1"}))
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(ctx context.Context, f repository.RepositoryFactory) error {
		require.NoError(t, f.NewProductRepository().CreateProduct(ctx, &entity.Product{ID: "p10", SellerID: "s1"}))
		require.NoError(t, f.NewLikeRepository().DeleteLike(ctx, "u9", "p1"))

		return errors.New("boom")
	})
	require.Error(t, err)

	_, err = NewProductRepository(store).FindProductByID(ctx, "p10")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	exists, err := likes.ExistsLike(ctx, "u9", "p1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(ctx context.Context, f repository.RepositoryFactory) error {
		return f.NewProductRepository().SetLikeCount(ctx, "p1", 6)
	})
	require.NoError(t, err)

	p, err := NewProductRepository(store).FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.LikeCount)
}

func TestStore_LoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	raw := `{
		"sellers": [{"id": "s1", "name": "Loom House", "city": "Jaipur", "state": "Rajasthan"}],
		"products": [{"id": "p1", "seller_id": "s1", "name": "Rug", "price": "120.50", "category": "textiles", "is_active": true}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	store := NewStore()
	require.NoError(t, store.LoadFixture(path))

	p, err := NewProductRepository(store).FindProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("120.5").Equal(p.Price))
	assert.Equal(t, entity.CategoryTextiles, p.Category)

	assert.Error(t, store.LoadFixture(filepath.Join(t.TempDir(), "missing.json")))
}
