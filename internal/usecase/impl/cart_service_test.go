package impl

import (
	"context"
	"testing"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/kvstore"
	"artisan/internal/infra/persistence/memory"
	mockRepo "artisan/internal/mocks/repository"
	"artisan/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cartProducts() memory.Fixture {
	return memory.Fixture{
		Products: []*entity.Product{
			{ID: "vase", SellerID: "s1", Name: "Vase", Price: price("45.99"), StockCount: 2, IsActive: true, Images: []string{"https://cdn/vase.jpg"}},
			{ID: "mug", SellerID: "s1", Name: "Mug", Price: price("12.50"), StockCount: 10, IsActive: true},
			{ID: "retired", SellerID: "s1", Name: "Retired", Price: price("5"), StockCount: 5, IsActive: false},
			{ID: "soldout", SellerID: "s1", Name: "Sold out", Price: price("5"), StockCount: 0, IsActive: true},
		},
	}
}

func createTestCartService(t *testing.T, store repository.KeyValueStore) usecase.CartUsecase {
	t.Helper()

	catalog := memory.NewStore()
	catalog.Seed(cartProducts())

	return NewCartService(CartServiceParams{
		Store:    store,
		Products: memory.NewProductRepository(catalog),
		Config:   newTestConfig(),
		Logger:   newDiscardLogger(),
	})
}

func TestCartService_AddToCart(t *testing.T) {
	srv := createTestCartService(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	view, err := srv.AddToCart(ctx, "u1", "vase")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "https://cdn/vase.jpg", view.Lines[0].Image)

	view, err = srv.AddToCart(ctx, "u1", "vase")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	_, err = srv.AddToCart(ctx, "u1", "vase")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	view, err = srv.AddToCart(ctx, "u1", "mug")
	require.NoError(t, err)
	assert.Equal(t, 3, view.ItemCount)
	assert.True(t, price("104.48").Equal(view.Subtotal))

	// State survives across calls and is isolated per owner.
	view, err = srv.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 2)

	view, err = srv.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	srv := createTestCartService(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	_, err := srv.AddToCart(ctx, "u1", "retired")
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	_, err = srv.AddToCart(ctx, "u1", "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	_, err = srv.AddToCart(ctx, "u1", "soldout")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	_, err = srv.AddToCart(ctx, "", "mug")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	srv := createTestCartService(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	view, err := srv.SetQuantity(ctx, "u1", "mug", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.ItemCount)

	_, err = srv.SetQuantity(ctx, "u1", "mug", 11)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	view, err = srv.SetQuantity(ctx, "u1", "mug", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = srv.AddToCart(ctx, "u1", "vase")
	require.NoError(t, err)
	view, err = srv.RemoveFromCart(ctx, "u1", "vase")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_ClearCart(t *testing.T) {
	store := kvstore.NewMemoryStore()
	srv := createTestCartService(t, store)
	ctx := context.Background()

	_, err := srv.AddToCart(ctx, "u1", "mug")
	require.NoError(t, err)
	require.NoError(t, srv.ClearCart(ctx, "u1"))

	_, ok, err := store.Get(ctx, "cart:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartService_ToggleWishlist(t *testing.T) {
	srv := createTestCartService(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	wishlist, err := srv.ToggleWishlist(ctx, "u1", "vase")
	require.NoError(t, err)
	assert.Equal(t, []string{"vase"}, wishlist)

	// Wishlists accept any id, including inactive products.
	wishlist, err = srv.ToggleWishlist(ctx, "u1", "retired")
	require.NoError(t, err)
	assert.Equal(t, []string{"vase", "retired"}, wishlist)

	wishlist, err = srv.ToggleWishlist(ctx, "u1", "vase")
	require.NoError(t, err)
	assert.Equal(t, []string{"retired"}, wishlist)

	wishlist, err = srv.GetWishlist(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"retired"}, wishlist)

	_, err = srv.ToggleWishlist(ctx, "u1", "")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCartService_StoreWriteFailure(t *testing.T) {
	store := mockRepo.NewMockKeyValueStore(t)
	srv := createTestCartService(t, store)

	store.EXPECT().Get(mock.Anything, "cart:u1").Return("", false, nil)
	store.EXPECT().Get(mock.Anything, "wishlist:u1").Return("", false, nil)
	store.EXPECT().Set(mock.Anything, "cart:u1", mock.Anything).Return(errors.New("disk full")).Once()

	_, err := srv.AddToCart(context.Background(), "u1", "mug")
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))
}

func TestCartService_CorruptStateStartsEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart:u1", "{not json"))

	srv := createTestCartService(t, store)

	view, err := srv.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_StoreReadFailureKeepsPersistedCart(t *testing.T) {
	store := mockRepo.NewMockKeyValueStore(t)
	srv := createTestCartService(t, store)

	store.EXPECT().Get(mock.Anything, "cart:u1").Return("", false, errors.New("connection reset"))

	// No Set expectation: a failed read must not be followed by a write.
	_, err := srv.AddToCart(context.Background(), "u1", "mug")
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))

	_, err = srv.GetCart(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))
}
