package impl

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"artisan/config"
	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/cart"
	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/usecase"

	"go.uber.org/fx"
)

const ownerLockStripes = 64

// cartService implements the CartUsecase interface. Each call hydrates a
// cart.Manager for the owner from the key-value store; calls for the same
// owner are serialised so concurrent writes do not overwrite each other.
type cartService struct {
	store        repository.KeyValueStore
	products     repository.ProductRepository
	storeTimeout time.Duration
	locks        [ownerLockStripes]sync.Mutex
	logger       *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Store    repository.KeyValueStore
	Products repository.ProductRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		store:        params.Store,
		products:     params.Products,
		storeTimeout: storeTimeoutOf(params.Config),
		logger:       params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// withManager runs fn with the owner's hydrated manager while holding the owner's lock.
func (srv *cartService) withManager(ctx context.Context, owner string, fn func(ctx context.Context, m *cart.Manager) error) error {
	if owner == "" {
		return domainerrors.ErrUnauthorized
	}

	lock := &srv.locks[stripe(owner)]
	lock.Lock()
	defer lock.Unlock()

	tctx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	m, err := cart.NewManager(tctx, srv.store, owner, srv.log(ctx))
	if err != nil {
		return storeError(err, "failed to load cart")
	}
	if err := fn(tctx, m); err != nil {
		return storeError(err, "failed to update cart")
	}

	return nil
}

func stripe(owner string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))

	return h.Sum32() % ownerLockStripes
}

// activeProduct resolves a product that can be put in a cart.
func (srv *cartService) activeProduct(ctx context.Context, productID string) (*entity.Product, error) {
	tctx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	product, err := srv.products.FindProductByID(tctx, productID)
	if err != nil {
		return nil, storeError(err, "failed to find product")
	}
	if !product.IsActive {
		return nil, domainerrors.ErrProductNotFound.WithDetails(productID)
	}

	return product, nil
}

func (srv *cartService) GetCart(ctx context.Context, owner string) (*usecase.CartView, error) {
	var view *usecase.CartView
	err := srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		view = cartView(m)

		return nil
	})

	return view, err
}

func (srv *cartService) AddToCart(ctx context.Context, owner, productID string) (*usecase.CartView, error) {
	product, err := srv.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var view *usecase.CartView
	err = srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		if _, err := m.AddToCart(ctx, product); err != nil {
			return err
		}
		view = cartView(m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (srv *cartService) SetQuantity(ctx context.Context, owner, productID string, quantity int) (*usecase.CartView, error) {
	if quantity <= 0 {
		return srv.RemoveFromCart(ctx, owner, productID)
	}

	product, err := srv.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var view *usecase.CartView
	err = srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		if _, err := m.SetQuantity(ctx, product, quantity); err != nil {
			return err
		}
		view = cartView(m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (srv *cartService) RemoveFromCart(ctx context.Context, owner, productID string) (*usecase.CartView, error) {
	var view *usecase.CartView
	err := srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		if _, err := m.RemoveFromCart(ctx, productID); err != nil {
			return err
		}
		view = cartView(m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (srv *cartService) ClearCart(ctx context.Context, owner string) error {
	return srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		return m.Clear(ctx)
	})
}

func (srv *cartService) GetWishlist(ctx context.Context, owner string) ([]string, error) {
	var wishlist []string
	err := srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		wishlist = m.Wishlist()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// ToggleWishlist does not check that the product exists, matching the cart
// manager which applies no eligibility rules to wishlists.
func (srv *cartService) ToggleWishlist(ctx context.Context, owner, productID string) ([]string, error) {
	if productID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product id is required")
	}

	var wishlist []string
	err := srv.withManager(ctx, owner, func(ctx context.Context, m *cart.Manager) error {
		var err error
		wishlist, err = m.ToggleWishlist(ctx, productID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

func cartView(m *cart.Manager) *usecase.CartView {
	lines := m.Lines()
	if lines == nil {
		lines = []entity.CartLine{}
	}

	return &usecase.CartView{
		Lines:     lines,
		ItemCount: m.ItemCount(),
		Subtotal:  m.Subtotal(),
	}
}
