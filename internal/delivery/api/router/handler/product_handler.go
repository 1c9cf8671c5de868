package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"artisan/internal/delivery/api/middleware"
	"artisan/internal/delivery/api/response"
	"artisan/internal/domain/catalog"
	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog and seller listing endpoints.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ListProductsRequest holds the catalog query parameters.
type ListProductsRequest struct {
	Category  string `query:"category" validate:"omitempty,category_filter"`
	MinPrice  string `query:"minPrice"`
	MaxPrice  string `query:"maxPrice"`
	Search    string `query:"search"`
	Q         string `query:"q"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	Page      int    `query:"page" validate:"min=1"`
	Limit     int    `query:"limit" validate:"min=0"` // Zero selects the default page size.
}

// SellerProductsRequest holds the seller listing query parameters.
type SellerProductsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=all active inactive"`
	Page   int    `query:"page" validate:"min=1"`
	Limit  int    `query:"limit" validate:"min=0"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description" validate:"max=5000"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Category      entity.Category  `json:"category" validate:"required,category"`
	Tags          []string         `json:"tags" validate:"max=20,dive,max=50"`
	Materials     []string         `json:"materials" validate:"max=20,dive,max=50"`
	Dimensions    string           `json:"dimensions" validate:"max=200"`
	StockCount    int              `json:"stock_count" validate:"min=0"`
	Images        []string         `json:"images" validate:"max=10,dive,url"`
}

// UpdateProductRequest represents the request body for a partial product update
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=5000"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	ClearDiscount bool             `json:"clear_discount"`
	Category      *entity.Category `json:"category" validate:"omitempty,category"`
	Tags          []string         `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Materials     []string         `json:"materials" validate:"omitempty,max=20,dive,max=50"`
	Dimensions    *string          `json:"dimensions" validate:"omitempty,max=200"`
	StockCount    *int             `json:"stock_count" validate:"omitempty,min=0"`
	Images        []string         `json:"images" validate:"omitempty,max=10,dive,url"`
	IsActive      *bool            `json:"is_active"`
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter, err := h.bindFilter(c)
	if err != nil {
		return err
	}

	page, err := h.productUC.QueryProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductListResponse(page))
}

// SearchProducts handles GET /api/v1/products/search
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	filter, err := h.bindFilter(c)
	if err != nil {
		return err
	}

	page, err := h.productUC.SearchProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductListResponse(page))
}

// Categories handles GET /api/v1/products/categories
func (h *ProductHandler) Categories(c echo.Context) error {
	facets, err := h.productUC.CategoryFacets(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	resp := make([]CategoryFacetResponse, 0, len(facets))
	for _, facet := range facets {
		resp = append(resp, CategoryFacetResponse{Category: facet.Category, Count: facet.Count})
	}

	return response.Success(c, http.StatusOK, resp)
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	viewerID, _ := middleware.GetUserID(c)

	detail, err := h.productUC.GetProduct(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductDetailResponse(detail))
}

// ListSellerProducts handles GET /api/v1/sellers/:sellerId/products.
// Only the seller itself sees inactive listings.
func (h *ProductHandler) ListSellerProducts(c echo.Context) error {
	req := SellerProductsRequest{Page: 1}
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	sellerID := c.Param("sellerId")
	status := usecase.SellerProductStatus(req.Status)
	if callerID, ok := middleware.GetUserID(c); !ok || callerID != sellerID {
		status = usecase.SellerProductsActive
	} else if status == "" {
		status = usecase.SellerProductsAll
	}

	page, err := h.productUC.ListSellerProducts(c.Request().Context(), sellerID, status, req.Page, req.Limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductListResponse(page))
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), sellerID, &usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Tags:          req.Tags,
		Materials:     req.Materials,
		Dimensions:    req.Dimensions,
		StockCount:    req.StockCount,
		Images:        req.Images,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(product, nil))
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), sellerID, c.Param("id"), &usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ClearDiscount: req.ClearDiscount,
		Category:      req.Category,
		Tags:          req.Tags,
		Materials:     req.Materials,
		Dimensions:    req.Dimensions,
		StockCount:    req.StockCount,
		Images:        req.Images,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product, nil))
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), sellerID, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

func (h *ProductHandler) bindFilter(c echo.Context) (entity.ProductFilter, error) {
	req := ListProductsRequest{Page: 1}
	if err := bindQuery(c, &req); err != nil {
		return entity.ProductFilter{}, err
	}

	sortKey, err := catalog.ParseSortKey(req.SortBy, req.SortOrder)
	if err != nil {
		return entity.ProductFilter{}, err
	}

	minPrice, err := parsePrice("minPrice", req.MinPrice)
	if err != nil {
		return entity.ProductFilter{}, err
	}
	maxPrice, err := parsePrice("maxPrice", req.MaxPrice)
	if err != nil {
		return entity.ProductFilter{}, err
	}

	search := req.Q
	if search == "" {
		search = req.Search
	}

	return entity.ProductFilter{
		Category:   entity.Category(req.Category),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		SearchTerm: search,
		SortKey:    sortKey,
		Page:       req.Page,
		PageSize:   req.Limit,
	}, nil
}

// bindQuery binds and validates query parameters. Absent parameters keep the
// values already set on req.
func bindQuery(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed query parameters")
	}

	return c.Validate(req)
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a non-negative number")
	}

	return &price, nil
}
