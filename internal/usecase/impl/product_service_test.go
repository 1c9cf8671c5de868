package impl

import (
	"context"
	"testing"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	mockRepo "artisan/internal/mocks/repository"
	mockSvc "artisan/internal/mocks/service"
	"artisan/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service  usecase.ProductUsecase
	products *mockRepo.MockProductRepository
	sellers  *mockRepo.MockSellerRepository
	reviews  *mockRepo.MockReviewRepository
	likes    *mockRepo.MockLikeRepository
	images   *mockSvc.MockImageStorage
}

func createTestProductService(t *testing.T) productServiceFixtures {
	fx := productServiceFixtures{
		products: mockRepo.NewMockProductRepository(t),
		sellers:  mockRepo.NewMockSellerRepository(t),
		reviews:  mockRepo.NewMockReviewRepository(t),
		likes:    mockRepo.NewMockLikeRepository(t),
		images:   mockSvc.NewMockImageStorage(t),
	}

	fx.service = NewProductService(ProductServiceParams{
		Products: fx.products,
		Sellers:  fx.sellers,
		Reviews:  fx.reviews,
		Likes:    fx.likes,
		Images:   fx.images,
		Config:   newTestConfig(),
		Logger:   newDiscardLogger(),
	})

	return fx
}

var (
	clayStudio = &entity.Seller{ID: "s1", Name: "Clay Studio", City: "Santa Fe", State: "NM", Rating: 4.8}
	oakWorks   = &entity.Seller{ID: "s2", Name: "Oak Works", City: "Portland", State: "OR"}
)

func catalogFixture() []*entity.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return []*entity.Product{
		{ID: "vase", SellerID: "s1", Name: "Handmade Ceramic Vase", Category: entity.CategoryPottery, Price: price("45.99"), IsActive: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "table", SellerID: "s2", Name: "Oak Coffee Table", Category: entity.CategoryWoodwork, Price: price("199.99"), IsActive: true, CreatedAt: base.Add(time.Hour)},
		{ID: "bowl", SellerID: "s1", Name: "Stoneware Bowl", Category: entity.CategoryPottery, Price: price("24.00"), IsActive: true, CreatedAt: base},
	}
}

func TestProductService_QueryProducts_FiltersInMemory(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	// The store returns more than the pushdown asked for; the predicate still applies.
	fx.products.EXPECT().
		FindProducts(mock.Anything, mock.MatchedBy(func(q repository.ProductQuery) bool {
			return q.IsActive != nil && *q.IsActive && q.Category == entity.CategoryPottery
		})).
		Return(catalogFixture(), nil).Once()
	fx.sellers.EXPECT().
		FindSellersByIDs(mock.Anything, mock.MatchedBy(func(ids []string) bool { return len(ids) == 2 })).
		Return(map[string]*entity.Seller{"s1": clayStudio, "s2": oakWorks}, nil).Once()

	page, err := fx.service.QueryProducts(ctx, entity.ProductFilter{
		Category: entity.CategoryPottery,
		MinPrice: dec("20"),
		MaxPrice: dec("100"),
		SortKey:  entity.SortPriceAsc,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "bowl", page.Items[0].Product.ID)
	assert.Equal(t, "vase", page.Items[1].Product.ID)
	assert.Equal(t, "Santa Fe, NM", page.Items[0].Seller.Location)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 12, page.PageSize)
}

func TestProductService_QueryProducts_SearchCountsFilteredSet(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return(catalogFixture(), nil).Once()
	fx.sellers.EXPECT().FindSellersByIDs(mock.Anything, mock.Anything).
		Return(map[string]*entity.Seller{"s1": clayStudio, "s2": oakWorks}, nil).Once()

	// "clay" only matches through the seller name.
	page, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{SearchTerm: "  CLAY ", PageSize: 1})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "vase", page.Items[0].Product.ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestProductService_QueryProducts_UnknownSellerLeavesSummaryNil(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return(catalogFixture()[1:2], nil).Once()
	fx.sellers.EXPECT().FindSellersByIDs(mock.Anything, []string{"s2"}).Return(map[string]*entity.Seller{}, nil).Once()

	page, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].Seller)
}

func TestProductService_QueryProducts_EmptyPriceRangeSkipsStore(t *testing.T) {
	fx := createTestProductService(t)

	page, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{
		MinPrice: dec("100"),
		MaxPrice: dec("10"),
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
}

func TestProductService_QueryProducts_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		filter entity.ProductFilter
	}{
		{name: "unknown category", filter: entity.ProductFilter{Category: "Pottery"}},
		{name: "unknown sort key", filter: entity.ProductFilter{SortKey: "cheapest"}},
		{name: "negative page", filter: entity.ProductFilter{Page: -1}},
		{name: "negative page size", filter: entity.ProductFilter{PageSize: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t)

			_, err := fx.service.QueryProducts(context.Background(), tt.filter)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestProductService_QueryProducts_CapsPageSize(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return([]*entity.Product{}, nil).Once()

	page, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.PageSize)
}

func TestProductService_QueryProducts_StoreFailureIsRetryable(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{})
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_UNAVAILABLE", appErr.ErrorCode())
}

func TestProductService_QueryProducts_StoreTimeout(t *testing.T) {
	fx := createTestProductService(t)
	fx.service.(*productService).storeTimeout = 20 * time.Millisecond

	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ repository.ProductQuery) ([]*entity.Product, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		}).Once()

	_, err := fx.service.QueryProducts(context.Background(), entity.ProductFilter{})
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))
}

func TestProductService_SearchProducts_RequiresTerm(t *testing.T) {
	fx := createTestProductService(t)

	_, err := fx.service.SearchProducts(context.Background(), entity.ProductFilter{SearchTerm: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductService_GetProduct(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	product := &entity.Product{ID: "p1", SellerID: "s1", Category: entity.CategoryPottery, IsActive: false, CreatedAt: base}
	siblings := []*entity.Product{
		{ID: "p1", SellerID: "s1", Category: entity.CategoryPottery, CreatedAt: base},
		{ID: "p2", SellerID: "s1", Category: entity.CategoryPottery, CreatedAt: base.Add(time.Hour)},
		{ID: "p3", SellerID: "s1", Category: entity.CategoryPottery, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p4", SellerID: "s1", Category: entity.CategoryPottery, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "p5", SellerID: "s1", Category: entity.CategoryPottery, CreatedAt: base.Add(4 * time.Hour)},
	}

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(product, nil).Once()
	fx.sellers.EXPECT().FindSellerByID(mock.Anything, "s1").Return(clayStudio, nil).Once()
	fx.reviews.EXPECT().FindReviewsByProduct(mock.Anything, "p1").Return([]*entity.Review{
		{ID: "r1", ProductID: "p1", Rating: 5},
		{ID: "r2", ProductID: "p1", Rating: 4},
	}, nil).Once()
	fx.products.EXPECT().
		FindProducts(mock.Anything, mock.MatchedBy(func(q repository.ProductQuery) bool {
			return q.SellerID == "s1" && q.Category == entity.CategoryPottery && q.Limit == 5 && *q.IsActive
		})).
		Return(siblings, nil).Once()
	fx.likes.EXPECT().ExistsLike(mock.Anything, "u1", "p1").Return(true, nil).Once()

	detail, err := fx.service.GetProduct(ctx, "p1", "u1")
	require.NoError(t, err)

	assert.Equal(t, "p1", detail.Product.ID)
	assert.Equal(t, "Clay Studio", detail.Seller.Name)
	assert.Equal(t, 2, detail.ReviewCount)
	assert.InDelta(t, 4.5, detail.AverageRating, 1e-9)
	assert.True(t, detail.Liked)

	require.Len(t, detail.Related, 4)
	ids := make([]string, 0, len(detail.Related))
	for _, item := range detail.Related {
		ids = append(ids, item.Product.ID)
		assert.Equal(t, detail.Seller, item.Seller)
	}
	assert.Equal(t, []string{"p5", "p4", "p3", "p2"}, ids)
}

func TestProductService_GetProduct_AnonymousWithoutSeller(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", SellerID: "gone", Category: entity.CategoryGlass}, nil).Once()
	fx.sellers.EXPECT().FindSellerByID(mock.Anything, "gone").Return(nil, domainerrors.ErrSellerNotFound).Once()
	fx.reviews.EXPECT().FindReviewsByProduct(mock.Anything, "p1").Return([]*entity.Review{}, nil).Once()
	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return([]*entity.Product{}, nil).Once()

	detail, err := fx.service.GetProduct(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Nil(t, detail.Seller)
	assert.Zero(t, detail.AverageRating)
	assert.False(t, detail.Liked)
	assert.Empty(t, detail.Related)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "missing").Return(nil, domainerrors.ErrProductNotFound).Once()

	_, err := fx.service.GetProduct(context.Background(), "missing", "")
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_GetProduct_FanOutFailure(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", SellerID: "s1", Category: entity.CategoryGlass}, nil).Once()
	fx.sellers.EXPECT().FindSellerByID(mock.Anything, "s1").Return(clayStudio, nil).Maybe()
	fx.reviews.EXPECT().FindReviewsByProduct(mock.Anything, "p1").Return(nil, errors.New("deadline")).Once()
	fx.products.EXPECT().FindProducts(mock.Anything, mock.Anything).Return([]*entity.Product{}, nil).Maybe()

	_, err := fx.service.GetProduct(context.Background(), "p1", "")
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))
}

func TestProductService_ListSellerProducts(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().
		FindProducts(mock.Anything, mock.MatchedBy(func(q repository.ProductQuery) bool {
			return q.SellerID == "s1" && q.IsActive != nil && !*q.IsActive
		})).
		Return([]*entity.Product{{ID: "old", SellerID: "s1"}}, nil).Once()
	fx.sellers.EXPECT().FindSellersByIDs(mock.Anything, []string{"s1"}).
		Return(map[string]*entity.Seller{"s1": clayStudio}, nil).Once()

	page, err := fx.service.ListSellerProducts(context.Background(), "s1", usecase.SellerProductsInactive, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)

	_, err = fx.service.ListSellerProducts(context.Background(), "s1", "archived", 1, 10)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductService_CategoryFacets(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().CountProducts(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, q repository.ProductQuery) (int, error) {
			if q.Category == entity.CategoryPottery {
				return 3, nil
			}

			return 0, nil
		}).Times(len(entity.Categories))

	facets, err := fx.service.CategoryFacets(context.Background())
	require.NoError(t, err)
	require.Len(t, facets, len(entity.Categories))
	assert.Equal(t, usecase.CategoryFacet{Category: entity.CategoryPottery, Count: 3}, facets[0])
	assert.Equal(t, 0, facets[1].Count)
}

func TestProductService_CreateProduct(t *testing.T) {
	fx := createTestProductService(t)

	fx.sellers.EXPECT().FindSellerByID(mock.Anything, "s1").Return(clayStudio, nil).Once()
	fx.products.EXPECT().CreateProduct(mock.Anything, mock.AnythingOfType("*entity.Product")).
		RunAndReturn(func(_ context.Context, p *entity.Product) error {
			p.ID = "new"

			return nil
		}).Once()

	product, err := fx.service.CreateProduct(context.Background(), "s1", &usecase.CreateProductInput{
		Name:       " Raku Bowl ",
		Price:      price("60"),
		Category:   entity.CategoryPottery,
		StockCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", product.ID)
	assert.Equal(t, "Raku Bowl", product.Name)
	assert.Equal(t, "s1", product.SellerID)
	assert.True(t, product.IsActive)
	assert.NotNil(t, product.Tags)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.CreateProductInput
	}{
		{
			name:  "negative price",
			input: &usecase.CreateProductInput{Name: "Bowl", Price: price("-1"), Category: entity.CategoryPottery},
		},
		{
			name:  "zero price",
			input: &usecase.CreateProductInput{Name: "Bowl", Price: price("0"), Category: entity.CategoryPottery},
		},
		{
			name:  "original price below price",
			input: &usecase.CreateProductInput{Name: "Bowl", Price: price("60"), OriginalPrice: dec("59.99"), Category: entity.CategoryPottery},
		},
		{
			name:  "blank name",
			input: &usecase.CreateProductInput{Name: "  ", Price: price("10"), Category: entity.CategoryPottery},
		},
		{
			name:  "unknown category",
			input: &usecase.CreateProductInput{Name: "Bowl", Price: price("10"), Category: entity.Category("Pottery")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t)

			_, err := fx.service.CreateProduct(context.Background(), "s1", tt.input)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}

	fx := createTestProductService(t)
	_, err := fx.service.CreateProduct(context.Background(), "", &usecase.CreateProductInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestProductService_CreateProduct_OriginalPriceEqualToPrice(t *testing.T) {
	fx := createTestProductService(t)

	fx.sellers.EXPECT().FindSellerByID(mock.Anything, "s1").Return(clayStudio, nil).Once()
	fx.products.EXPECT().CreateProduct(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Once()

	_, err := fx.service.CreateProduct(context.Background(), "s1", &usecase.CreateProductInput{
		Name:          "Bowl",
		Price:         price("60"),
		OriginalPrice: dec("60"),
		Category:      entity.CategoryPottery,
	})
	require.NoError(t, err)
}

func TestProductService_UpdateProduct(t *testing.T) {
	fx := createTestProductService(t)
	original := dec("80")

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(&entity.Product{
		ID: "p1", SellerID: "s1", Name: "Bowl", Price: price("60"), OriginalPrice: original,
		Category: entity.CategoryPottery, StockCount: 2, IsActive: true,
	}, nil).Once()
	fx.products.EXPECT().UpdateProduct(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Once()

	stock := 7
	updated, err := fx.service.UpdateProduct(context.Background(), "s1", "p1", &usecase.UpdateProductInput{
		StockCount:    &stock,
		ClearDiscount: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockCount)
	assert.Nil(t, updated.OriginalPrice)
	assert.Equal(t, "Bowl", updated.Name)
}

func TestProductService_UpdateProduct_Invalid(t *testing.T) {
	zero := price("0")
	low := price("70")

	tests := []struct {
		name  string
		input *usecase.UpdateProductInput
	}{
		{name: "zero price", input: &usecase.UpdateProductInput{Price: &zero}},
		{name: "original price below price", input: &usecase.UpdateProductInput{OriginalPrice: &low, Price: dec("75")}},
		{name: "price raised above original", input: &usecase.UpdateProductInput{Price: dec("81")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t)

			fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(&entity.Product{
				ID: "p1", SellerID: "s1", Name: "Bowl", Price: price("60"), OriginalPrice: dec("80"),
				Category: entity.CategoryPottery, IsActive: true,
			}, nil).Once()

			_, err := fx.service.UpdateProduct(context.Background(), "s1", "p1", tt.input)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestProductService_UpdateProduct_DeactivationStampsDeletedAt(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(&entity.Product{
		ID: "p1", SellerID: "s1", Name: "Bowl", Price: price("60"), Category: entity.CategoryPottery, IsActive: true,
	}, nil).Once()
	fx.products.EXPECT().UpdateProduct(mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Twice()

	inactive := false
	updated, err := fx.service.UpdateProduct(context.Background(), "s1", "p1", &usecase.UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.DeletedAt)
	assert.Equal(t, updated.UpdatedAt, *updated.DeletedAt)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(updated, nil).Once()

	active := true
	restored, err := fx.service.UpdateProduct(context.Background(), "s1", "p1", &usecase.UpdateProductInput{IsActive: &active})
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Nil(t, restored.DeletedAt)
}

func TestProductService_UpdateProduct_NotOwner(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", SellerID: "s1"}, nil).Once()

	_, err := fx.service.UpdateProduct(context.Background(), "s2", "p1", &usecase.UpdateProductInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrProductOwnershipViolation))
}

func TestProductService_DeleteProduct_ImageFailureIsNotReturned(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").Return(&entity.Product{
		ID: "p1", SellerID: "s1", Images: []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
	}, nil).Once()
	fx.products.EXPECT().SoftDeleteProduct(mock.Anything, "p1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	fx.images.EXPECT().DeleteImage(mock.Anything, "https://cdn/a.jpg").Return(errors.New("bucket offline")).Once()
	fx.images.EXPECT().DeleteImage(mock.Anything, "https://cdn/b.jpg").Return(nil).Once()

	require.NoError(t, fx.service.DeleteProduct(context.Background(), "s1", "p1"))
}

func TestProductService_DeleteProduct_NotOwner(t *testing.T) {
	fx := createTestProductService(t)

	fx.products.EXPECT().FindProductByID(mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", SellerID: "s1", Images: []string{"https://cdn/a.jpg"}}, nil).Once()

	err := fx.service.DeleteProduct(context.Background(), "s2", "p1")
	assert.True(t, errors.Is(err, domainerrors.ErrProductOwnershipViolation))
}
