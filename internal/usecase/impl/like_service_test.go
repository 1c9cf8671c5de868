package impl

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/persistence/memory"
	mockRepo "artisan/internal/mocks/repository"
	mockSvc "artisan/internal/mocks/service"
	"artisan/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// likeServiceFixtures holds all test dependencies for like service tests.
type likeServiceFixtures struct {
	service   usecase.LikeUsecase
	store     *memory.Store
	products  repository.ProductRepository
	publisher *mockSvc.MockEventPublisher
}

func createTestLikeService(t *testing.T, fixture memory.Fixture) likeServiceFixtures {
	store := memory.NewStore()
	store.Seed(fixture)

	fx := likeServiceFixtures{
		store:     store,
		products:  memory.NewProductRepository(store),
		publisher: mockSvc.NewMockEventPublisher(t),
	}
	fx.service = NewLikeService(LikeServiceParams{
		TxManager: memory.NewTransactionManager(store),
		Products:  fx.products,
		Likes:     memory.NewLikeRepository(store),
		Publisher: fx.publisher,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return fx
}

func TestLikeService_ToggleLike_IsSelfInverse(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{
		Products: []*entity.Product{{ID: "p1", SellerID: "s1", IsActive: true, LikeCount: 5}},
	})
	ctx := context.Background()

	fx.publisher.EXPECT().PublishLikeToggled(mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := fx.service.ToggleLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, &usecase.LikeResult{Liked: true, LikeCount: 6}, result)

	liked, err := fx.service.HasLiked(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	result, err = fx.service.ToggleLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, &usecase.LikeResult{Liked: false, LikeCount: 5}, result)

	product, err := fx.products.FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, product.LikeCount)

	liked, err = fx.service.HasLiked(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeService_ToggleLike_PublishesEvent(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{
		Products: []*entity.Product{{ID: "p1", IsActive: true}},
	})

	fx.publisher.EXPECT().
		PublishLikeToggled(mock.Anything, mock.AnythingOfType("*service.LikeToggledEvent")).
		Return(errors.New("topic not found")).Once()

	// Publishing is best effort.
	result, err := fx.service.ToggleLike(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)
}

func TestLikeService_ToggleLike_FloorsAtZero(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{
		Products: []*entity.Product{{ID: "p1", IsActive: true, LikeCount: 0}},
		Likes:    []*entity.Like{{UserID: "u1", ProductID: "p1"}},
	})
	fx.publisher.EXPECT().PublishLikeToggled(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := fx.service.ToggleLike(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, &usecase.LikeResult{Liked: false, LikeCount: 0}, result)
}

func TestLikeService_ToggleLike_MissingProduct(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{})

	_, err := fx.service.ToggleLike(context.Background(), "u1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	liked, err := fx.service.HasLiked(context.Background(), "u1", "missing")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeService_ToggleLike_RequiresUser(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{})

	_, err := fx.service.ToggleLike(context.Background(), "", "p1")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestLikeService_ToggleLike_ConcurrentUsers(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{
		Products: []*entity.Product{{ID: "p1", IsActive: true}},
	})
	fx.publisher.EXPECT().PublishLikeToggled(mock.Anything, mock.Anything).Return(nil)

	const users = 20
	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.service.ToggleLike(context.Background(), fmt.Sprintf("u%d", i), "p1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	product, err := fx.products.FindProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, users, product.LikeCount)
}

func TestLikeService_ReconcileLikeCount(t *testing.T) {
	fx := createTestLikeService(t, memory.Fixture{
		Products: []*entity.Product{{ID: "p1", IsActive: true, LikeCount: 10}},
		Likes: []*entity.Like{
			{UserID: "u1", ProductID: "p1"},
			{UserID: "u2", ProductID: "p1"},
		},
	})
	ctx := context.Background()

	count, err := fx.service.ReconcileLikeCount(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	product, err := fx.products.FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, product.LikeCount)

	_, err = fx.service.ReconcileLikeCount(ctx, "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

// stubTxManager runs fn directly against the given repositories.
type stubTxManager struct {
	products repository.ProductRepository
	likes    repository.LikeRepository
}

type txMarker struct{}

// Execute marks the context handed to fn so tests can tell it from the caller's.
func (m *stubTxManager) Execute(ctx context.Context, fn func(context.Context, repository.RepositoryFactory) error) error {
	return fn(context.WithValue(ctx, txMarker{}, true), m)
}

func inTx(ctx context.Context) bool {
	marked, _ := ctx.Value(txMarker{}).(bool)

	return marked
}

func (m *stubTxManager) NewProductRepository() repository.ProductRepository { return m.products }
func (m *stubTxManager) NewLikeRepository() repository.LikeRepository       { return m.likes }
func (m *stubTxManager) NewSellerRepository() repository.SellerRepository   { return nil }

func TestLikeService_ToggleLike_LostRaceIsConflict(t *testing.T) {
	products := mockRepo.NewMockProductRepository(t)
	likes := mockRepo.NewMockLikeRepository(t)
	tx := &stubTxManager{products: products, likes: likes}

	srv := NewLikeService(LikeServiceParams{
		TxManager: tx,
		Products:  products,
		Likes:     likes,
		Publisher: mockSvc.NewMockEventPublisher(t),
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	products.EXPECT().FindProductByID(mock.Anything, "p1").Return(&entity.Product{ID: "p1", LikeCount: 3}, nil).Once()
	likes.EXPECT().ExistsLike(mock.Anything, "u1", "p1").Return(false, nil).Once()
	likes.EXPECT().CreateLike(mock.Anything, mock.AnythingOfType("*entity.Like")).Return(domainerrors.ErrDuplicateLike).Once()

	_, err := srv.ToggleLike(context.Background(), "u1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStaleWriteConflict))
}

func TestLikeService_ToggleLike_StoreFailure(t *testing.T) {
	products := mockRepo.NewMockProductRepository(t)
	likes := mockRepo.NewMockLikeRepository(t)

	srv := NewLikeService(LikeServiceParams{
		TxManager: &stubTxManager{products: products, likes: likes},
		Products:  products,
		Likes:     likes,
		Publisher: mockSvc.NewMockEventPublisher(t),
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	// Repositories of the transaction must run on the transaction's context.
	txCtx := mock.MatchedBy(inTx)
	products.EXPECT().FindProductByID(txCtx, "p1").Return(&entity.Product{ID: "p1", LikeCount: 3}, nil).Once()
	likes.EXPECT().ExistsLike(txCtx, "u1", "p1").Return(true, nil).Once()
	likes.EXPECT().DeleteLike(txCtx, "u1", "p1").Return(nil).Once()
	products.EXPECT().SetLikeCount(txCtx, "p1", 2).Return(errors.New("write timeout")).Once()

	_, err := srv.ToggleLike(context.Background(), "u1", "p1")
	require.Error(t, err)
	assert.True(t, domainerrors.IsRetryable(err))
}

func TestLikeService_ReconcileLikeCount_UsesTransactionContext(t *testing.T) {
	products := mockRepo.NewMockProductRepository(t)
	likes := mockRepo.NewMockLikeRepository(t)

	srv := NewLikeService(LikeServiceParams{
		TxManager: &stubTxManager{products: products, likes: likes},
		Products:  products,
		Likes:     likes,
		Publisher: mockSvc.NewMockEventPublisher(t),
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	txCtx := mock.MatchedBy(inTx)
	products.EXPECT().FindProductByID(txCtx, "p1").Return(&entity.Product{ID: "p1", LikeCount: 7}, nil).Once()
	likes.EXPECT().CountLikesByProduct(txCtx, "p1").Return(4, nil).Once()
	products.EXPECT().SetLikeCount(txCtx, "p1", 4).Return(nil).Once()

	count, err := srv.ReconcileLikeCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
