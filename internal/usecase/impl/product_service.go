package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"artisan/config"
	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/catalog"
	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/domain/service"
	"artisan/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize     = 12
	defaultMaxPageSize  = 100
	defaultRelatedLimit = 4
)

// productService implements the ProductUsecase interface.
type productService struct {
	products repository.ProductRepository
	sellers  repository.SellerRepository
	reviews  repository.ReviewRepository
	likes    repository.LikeRepository
	images   service.ImageStorage

	storeTimeout    time.Duration
	defaultPageSize int
	maxPageSize     int
	relatedLimit    int

	// candidates coalesces identical concurrent store reads of catalog queries.
	candidates singleflight.Group

	logger *slog.Logger
	now    func() time.Time
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Sellers  repository.SellerRepository
	Reviews  repository.ReviewRepository
	Likes    repository.LikeRepository
	Images   service.ImageStorage
	Config   *config.Config
	Logger   *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	srv := &productService{
		products:        params.Products,
		sellers:         params.Sellers,
		reviews:         params.Reviews,
		likes:           params.Likes,
		images:          params.Images,
		storeTimeout:    storeTimeoutOf(params.Config),
		defaultPageSize: defaultPageSize,
		maxPageSize:     defaultMaxPageSize,
		relatedLimit:    defaultRelatedLimit,
		logger:          params.Logger,
		now:             time.Now,
	}

	if params.Config != nil && params.Config.Catalog != nil {
		if n := params.Config.Catalog.DefaultPageSize; n > 0 {
			srv.defaultPageSize = n
		}
		if n := params.Config.Catalog.MaxPageSize; n > 0 {
			srv.maxPageSize = n
		}
		if n := params.Config.Catalog.RelatedLimit; n > 0 {
			srv.relatedLimit = n
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, srv.storeTimeout)
}

// QueryProducts runs the catalog pipeline: store pushdown, seller lookup,
// in-memory predicate, sort and pagination.
func (srv *productService) QueryProducts(ctx context.Context, filter entity.ProductFilter) (*usecase.ProductPage, error) {
	filter, err := srv.normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	if filter.HasEmptyPriceRange() {
		return emptyPage(filter.Page, filter.PageSize), nil
	}

	candidates, err := srv.loadCandidates(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to load catalog candidates", slog.Any("error", err))

		return nil, err
	}

	matched := make([]*entity.Product, 0, len(candidates.products))
	for _, product := range candidates.products {
		if catalog.Matches(product, candidates.sellers[product.SellerID], filter) {
			matched = append(matched, product)
		}
	}

	sorted, err := catalog.SortProducts(matched, filter.SortKey)
	if err != nil {
		return nil, err
	}

	page, err := catalog.Paginate(sorted, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	return toProductPage(page, candidates.sellers), nil
}

// SearchProducts requires a non-blank search term.
func (srv *productService) SearchProducts(ctx context.Context, filter entity.ProductFilter) (*usecase.ProductPage, error) {
	if strings.TrimSpace(filter.SearchTerm) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("search query is required")
	}

	return srv.QueryProducts(ctx, filter)
}

func (srv *productService) normalizeFilter(filter entity.ProductFilter) (entity.ProductFilter, error) {
	if !filter.Category.IsAll() && !filter.Category.IsValid() {
		return filter, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown category %q", filter.Category))
	}
	if filter.Category == entity.CategoryAll {
		filter.Category = ""
	}

	if filter.SortKey == "" {
		filter.SortKey = catalog.DefaultSortKey
	}
	if !filter.SortKey.IsValid() {
		return filter, catalog.ErrInvalidSortKey
	}

	page, pageSize, err := srv.normalizePaging(filter.Page, filter.PageSize)
	if err != nil {
		return filter, err
	}
	filter.Page, filter.PageSize = page, pageSize
	filter.SearchTerm = strings.TrimSpace(filter.SearchTerm)

	return filter, nil
}

// normalizePaging applies the defaults for zero values and caps the page size.
func (srv *productService) normalizePaging(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = srv.defaultPageSize
	}
	if page < 1 {
		return 0, 0, catalog.ErrInvalidPage
	}
	if pageSize < 1 {
		return 0, 0, catalog.ErrInvalidPageSize
	}

	return page, min(pageSize, srv.maxPageSize), nil
}

type candidateSet struct {
	products []*entity.Product
	sellers  map[string]*entity.Seller
}

// loadCandidates fetches the active products matching the pushdown predicates
// and their sellers. Identical concurrent loads share one store round trip.
// The shared result is read-only.
func (srv *productService) loadCandidates(ctx context.Context, filter entity.ProductFilter) (*candidateSet, error) {
	active := true
	query := repository.ProductQuery{
		IsActive: &active,
		Category: filter.Category,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
	}

	// The shared load must not fail because the first caller went away.
	detached := context.WithoutCancel(ctx)
	ch := srv.candidates.DoChan(candidateKey(query), func() (any, error) {
		return srv.fetchCandidates(detached, query)
	})

	select {
	case <-ctx.Done():
		return nil, storeError(ctx.Err(), "catalog query interrupted")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*candidateSet), nil
	}
}

func (srv *productService) fetchCandidates(ctx context.Context, query repository.ProductQuery) (*candidateSet, error) {
	products, err := srv.findProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	sellers, err := srv.findSellers(ctx, products)
	if err != nil {
		return nil, err
	}

	return &candidateSet{products: products, sellers: sellers}, nil
}

func candidateKey(query repository.ProductQuery) string {
	var b strings.Builder
	b.WriteString(string(query.Category))
	b.WriteByte('|')
	if query.MinPrice != nil {
		b.WriteString(query.MinPrice.String())
	}
	b.WriteByte('|')
	if query.MaxPrice != nil {
		b.WriteString(query.MaxPrice.String())
	}

	return b.String()
}

func (srv *productService) findProducts(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, error) {
	ctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	products, err := srv.products.FindProducts(ctx, query)
	if err != nil {
		return nil, storeError(err, "failed to find products")
	}

	return products, nil
}

// findSellers loads the sellers of products in one batch.
func (srv *productService) findSellers(ctx context.Context, products []*entity.Product) (map[string]*entity.Seller, error) {
	ids := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, product := range products {
		if _, ok := seen[product.SellerID]; ok || product.SellerID == "" {
			continue
		}
		seen[product.SellerID] = struct{}{}
		ids = append(ids, product.SellerID)
	}
	if len(ids) == 0 {
		return map[string]*entity.Seller{}, nil
	}

	ctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	sellers, err := srv.sellers.FindSellersByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, "failed to find sellers")
	}

	return sellers, nil
}

func (srv *productService) findProduct(ctx context.Context, productID string) (*entity.Product, error) {
	ctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	product, err := srv.products.FindProductByID(ctx, productID)
	if err != nil {
		return nil, storeError(err, "failed to find product")
	}

	return product, nil
}

// GetProduct loads the product and fans out for its seller, reviews, related
// products and the viewer's like.
func (srv *productService) GetProduct(ctx context.Context, productID, viewerID string) (*usecase.ProductDetail, error) {
	product, err := srv.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	detail := &usecase.ProductDetail{Product: product}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tctx, cancel := srv.withTimeout(gctx)
		defer cancel()

		seller, err := srv.sellers.FindSellerByID(tctx, product.SellerID)
		if errors.Is(err, domainerrors.ErrSellerNotFound) {
			return nil
		}
		if err != nil {
			return storeError(err, "failed to find seller")
		}
		detail.Seller = seller.Summary()

		return nil
	})

	g.Go(func() error {
		tctx, cancel := srv.withTimeout(gctx)
		defer cancel()

		reviews, err := srv.reviews.FindReviewsByProduct(tctx, product.ID)
		if err != nil {
			return storeError(err, "failed to find reviews")
		}
		detail.Reviews = reviews
		detail.ReviewCount = len(reviews)
		detail.AverageRating = averageRating(reviews)

		return nil
	})

	var related []*entity.Product
	g.Go(func() error {
		var err error
		related, err = srv.findRelated(gctx, product)

		return err
	})

	if viewerID != "" {
		g.Go(func() error {
			tctx, cancel := srv.withTimeout(gctx)
			defer cancel()

			liked, err := srv.likes.ExistsLike(tctx, viewerID, product.ID)
			if err != nil {
				return storeError(err, "failed to check like")
			}
			detail.Liked = liked

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		srv.log(ctx).Error("Failed to load product detail", slog.String("product_id", productID), slog.Any("error", err))

		return nil, err
	}

	// Related products share the seller of the product.
	detail.Related = make([]*usecase.ProductItem, 0, len(related))
	for _, p := range related {
		detail.Related = append(detail.Related, &usecase.ProductItem{Product: p, Seller: detail.Seller})
	}

	return detail, nil
}

// findRelated returns up to relatedLimit active products of the same seller and
// category, newest first, excluding product itself.
func (srv *productService) findRelated(ctx context.Context, product *entity.Product) ([]*entity.Product, error) {
	active := true
	candidates, err := srv.findProducts(ctx, repository.ProductQuery{
		IsActive: &active,
		Category: product.Category,
		SellerID: product.SellerID,
		Limit:    srv.relatedLimit + 1,
	})
	if err != nil {
		return nil, err
	}

	related := make([]*entity.Product, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID != product.ID {
			related = append(related, candidate)
		}
	}

	related, err = catalog.SortProducts(related, entity.SortNewest)
	if err != nil {
		return nil, err
	}
	if len(related) > srv.relatedLimit {
		related = related[:srv.relatedLimit]
	}

	return related, nil
}

func averageRating(reviews []*entity.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}

	return float64(sum) / float64(len(reviews))
}

// ListSellerProducts lists a seller's own products, newest first.
func (srv *productService) ListSellerProducts(ctx context.Context, sellerID string, status usecase.SellerProductStatus, page, pageSize int) (*usecase.ProductPage, error) {
	if sellerID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("seller id is required")
	}
	if status == "" {
		status = usecase.SellerProductsAll
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown status %q", status))
	}

	page, pageSize, err := srv.normalizePaging(page, pageSize)
	if err != nil {
		return nil, err
	}

	query := repository.ProductQuery{SellerID: sellerID}
	switch status {
	case usecase.SellerProductsActive:
		active := true
		query.IsActive = &active
	case usecase.SellerProductsInactive:
		inactive := false
		query.IsActive = &inactive
	}

	products, err := srv.findProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	sellers, err := srv.findSellers(ctx, products)
	if err != nil {
		return nil, err
	}

	sorted, err := catalog.SortProducts(products, entity.SortNewest)
	if err != nil {
		return nil, err
	}

	result, err := catalog.Paginate(sorted, page, pageSize)
	if err != nil {
		return nil, err
	}

	return toProductPage(result, sellers), nil
}

// CategoryFacets counts active products per category.
func (srv *productService) CategoryFacets(ctx context.Context) ([]usecase.CategoryFacet, error) {
	facets := make([]usecase.CategoryFacet, len(entity.Categories))
	active := true

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range entity.Categories {
		g.Go(func() error {
			tctx, cancel := srv.withTimeout(gctx)
			defer cancel()

			count, err := srv.products.CountProducts(tctx, repository.ProductQuery{IsActive: &active, Category: category})
			if err != nil {
				return storeError(err, "failed to count products")
			}
			facets[i] = usecase.CategoryFacet{Category: category, Count: count}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return facets, nil
}

// CreateProduct lists a new active product for sellerID.
func (srv *productService) CreateProduct(ctx context.Context, sellerID string, input *usecase.CreateProductInput) (*entity.Product, error) {
	if sellerID == "" {
		return nil, domainerrors.ErrUnauthorized
	}
	if err := validateProductFields(input.Name, input.Price, input.OriginalPrice, input.Category, input.StockCount); err != nil {
		return nil, err
	}

	tctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	if _, err := srv.sellers.FindSellerByID(tctx, sellerID); err != nil {
		return nil, storeError(err, "failed to find seller")
	}

	now := srv.now()
	product := &entity.Product{
		SellerID:      sellerID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      input.Category,
		Tags:          nonNil(input.Tags),
		Materials:     nonNil(input.Materials),
		Dimensions:    input.Dimensions,
		StockCount:    input.StockCount,
		Images:        nonNil(input.Images),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := srv.products.CreateProduct(tctx, product); err != nil {
		return nil, storeError(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("product_id", product.ID), slog.String("seller_id", sellerID))

	return product, nil
}

// UpdateProduct applies a partial update to a product owned by sellerID.
func (srv *productService) UpdateProduct(ctx context.Context, sellerID, productID string, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	applyProductUpdate(product, input, now)
	if err := validateProductFields(product.Name, product.Price, product.OriginalPrice, product.Category, product.StockCount); err != nil {
		return nil, err
	}
	product.UpdatedAt = now

	tctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	if err := srv.products.UpdateProduct(tctx, product); err != nil {
		return nil, storeError(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct soft-deletes the product, then removes its images. Image
// failures are logged only.
func (srv *productService) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	product, err := srv.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	tctx, cancel := srv.withTimeout(ctx)
	defer cancel()

	if err := srv.products.SoftDeleteProduct(tctx, product.ID, srv.now()); err != nil {
		return storeError(err, "failed to delete product")
	}

	for _, url := range product.Images {
		if err := srv.images.DeleteImage(ctx, url); err != nil {
			srv.log(ctx).Warn("Failed to delete product image",
				slog.String("product_id", product.ID),
				slog.String("url", url),
				slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product deleted", slog.String("product_id", product.ID), slog.String("seller_id", sellerID))

	return nil
}

func (srv *productService) ownedProduct(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	if sellerID == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	product, err := srv.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(sellerID) {
		srv.log(ctx).Warn("Product ownership check failed", slog.String("product_id", productID), slog.String("seller_id", sellerID))

		return nil, domainerrors.ErrProductOwnershipViolation
	}

	return product, nil
}

// applyProductUpdate merges input into product. Deactivating stamps DeletedAt
// like a soft delete; reactivating clears it.
func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput, now time.Time) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearDiscount {
		product.OriginalPrice = nil
	} else if input.OriginalPrice != nil {
		original := *input.OriginalPrice
		product.OriginalPrice = &original
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Materials != nil {
		product.Materials = input.Materials
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.StockCount != nil {
		product.StockCount = *input.StockCount
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.IsActive != nil {
		switch {
		case *input.IsActive:
			product.DeletedAt = nil
		case product.IsActive:
			product.DeletedAt = &now
		}
		product.IsActive = *input.IsActive
	}
}

func toProductPage(page catalog.Page[*entity.Product], sellers map[string]*entity.Seller) *usecase.ProductPage {
	items := make([]*usecase.ProductItem, 0, len(page.Items))
	for _, product := range page.Items {
		items = append(items, &usecase.ProductItem{
			Product: product,
			Seller:  sellers[product.SellerID].Summary(),
		})
	}

	return &usecase.ProductPage{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

func emptyPage(page, pageSize int) *usecase.ProductPage {
	return &usecase.ProductPage{
		Items:    []*usecase.ProductItem{},
		Page:     page,
		PageSize: pageSize,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
