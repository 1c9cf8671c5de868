package handler

import (
	"log/slog"
	"net/http"

	"artisan/internal/delivery/api/middleware"
	"artisan/internal/delivery/api/response"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the cart and wishlist of the authenticated user.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddCartItemRequest represents the request body for adding a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateCartItemRequest represents the request body for setting a line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	view, err := h.cartUC.GetCart(c.Request().Context(), owner)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.cartUC.AddToCart(c.Request().Context(), owner, req.ProductID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

// UpdateItem handles PUT /api/v1/cart/items/:productId. Quantity zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.cartUC.SetQuantity(c.Request().Context(), owner, c.Param("productId"), req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	view, err := h.cartUC.RemoveFromCart(c.Request().Context(), owner, c.Param("productId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCartResponse(view))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), owner); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// GetWishlist handles GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	ids, err := h.cartUC.GetWishlist(c.Request().Context(), owner)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, WishlistResponse{ProductIDs: nonNil(ids)})
}

// ToggleWishlist handles POST /api/v1/wishlist/:productId
func (h *CartHandler) ToggleWishlist(c echo.Context) error {
	owner, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	ids, err := h.cartUC.ToggleWishlist(c.Request().Context(), owner, c.Param("productId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, WishlistResponse{ProductIDs: nonNil(ids)})
}
