// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"artisan/config"
	"artisan/internal/delivery/api/middleware"
	"artisan/internal/delivery/api/router/handler"
	"artisan/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler *handler.ProductHandler
	LikeHandler    *handler.LikeHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler *handler.ProductHandler
	likeHandler    *handler.LikeHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler: params.ProductHandler,
		likeHandler:    params.LikeHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Public catalog routes
	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/search", r.productHandler.SearchProducts)
		productsGroup.GET("/categories", r.productHandler.Categories)
		productsGroup.GET("/:id", r.productHandler.GetProduct, r.authMiddleware.OptionalAuthenticate)
	}

	// Likes require a user and are limited per client IP
	productsGroup.POST("/:id/like", r.likeHandler.ToggleLike,
		middleware.RateLimit(r.config.RateLimit.LikesPerMinute),
		r.authMiddleware.Authenticate,
	)

	// Listing management requires the "seller" role
	sellerOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleSeller)}
	{
		productsGroup.POST("", r.productHandler.CreateProduct, sellerOnly...)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct, sellerOnly...)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct, sellerOnly...)
	}

	apiV1.GET("/sellers/:sellerId/products", r.productHandler.ListSellerProducts, r.authMiddleware.OptionalAuthenticate)

	// Client-owned state of the authenticated user
	cartGroup := apiV1.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	wishlistGroup := apiV1.Group("/wishlist")
	wishlistGroup.Use(r.authMiddleware.Authenticate)
	{
		wishlistGroup.GET("", r.cartHandler.GetWishlist)
		wishlistGroup.POST("/:productId", r.cartHandler.ToggleWishlist)
	}
}
