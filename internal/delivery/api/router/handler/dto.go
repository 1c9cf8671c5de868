package handler

import (
	"encoding/json"
	"time"

	"artisan/internal/delivery/api/response"
	"artisan/internal/domain/entity"
	"artisan/internal/usecase"

	"github.com/shopspring/decimal"
)

// ProductResponse is the wire form of a product. Prices are JSON numbers with two decimals.
type ProductResponse struct {
	ID            string                `json:"id"`
	SellerID      string                `json:"seller_id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Price         json.Number           `json:"price"`
	OriginalPrice json.Number           `json:"original_price,omitempty"`
	Category      entity.Category       `json:"category"`
	Tags          []string              `json:"tags"`
	Materials     []string              `json:"materials"`
	Dimensions    string                `json:"dimensions,omitempty"`
	StockCount    int                   `json:"stock_count"`
	InStock       bool                  `json:"in_stock"`
	Images        []string              `json:"images"`
	IsActive      bool                  `json:"is_active"`
	LikeCount     int                   `json:"like_count"`
	Rating        float64               `json:"rating"`
	ReviewCount   int                   `json:"review_count"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Seller        *entity.SellerSummary `json:"seller"`
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Products   []*ProductResponse   `json:"products"`
	Pagination *response.Pagination `json:"pagination"`
}

// ProductDetailResponse is the single product view.
type ProductDetailResponse struct {
	*ProductResponse
	Reviews       []*entity.Review   `json:"reviews"`
	AverageRating float64            `json:"average_rating"`
	Related       []*ProductResponse `json:"related_products"`
	Liked         bool               `json:"liked"`
}

// CategoryFacetResponse is the product count of one category.
type CategoryFacetResponse struct {
	Category entity.Category `json:"category"`
	Count    int             `json:"count"`
}

// LikeResponse is the like state after a toggle.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// CartLineResponse is one line of the cart.
type CartLineResponse struct {
	ProductID  string      `json:"product_id"`
	Name       string      `json:"name"`
	Price      json.Number `json:"price"`
	Image      string      `json:"image,omitempty"`
	SellerID   string      `json:"seller_id"`
	StockCount int         `json:"stock_count"`
	Quantity   int         `json:"quantity"`
	LineTotal  json.Number `json:"line_total"`
}

// CartResponse is the cart with its totals.
type CartResponse struct {
	Items     []*CartLineResponse `json:"items"`
	ItemCount int                 `json:"item_count"`
	Subtotal  json.Number         `json:"subtotal"`
}

// WishlistResponse lists the wishlisted product ids in insertion order.
type WishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func newProductResponse(p *entity.Product, seller *entity.SellerSummary) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Category:    p.Category,
		Tags:        nonNil(p.Tags),
		Materials:   nonNil(p.Materials),
		Dimensions:  p.Dimensions,
		StockCount:  p.StockCount,
		InStock:     p.InStock(),
		Images:      nonNil(p.Images),
		IsActive:    p.IsActive,
		LikeCount:   p.LikeCount,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Seller:      seller,
	}
	if p.OriginalPrice != nil {
		resp.OriginalPrice = money(*p.OriginalPrice)
	}

	return resp
}

func newProductItems(items []*usecase.ProductItem) []*ProductResponse {
	products := make([]*ProductResponse, 0, len(items))
	for _, item := range items {
		products = append(products, newProductResponse(item.Product, item.Seller))
	}

	return products
}

func newProductListResponse(page *usecase.ProductPage) *ProductListResponse {
	return &ProductListResponse{
		Products: newProductItems(page.Items),
		Pagination: &response.Pagination{
			Page:       page.Page,
			Limit:      page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
}

func newProductDetailResponse(detail *usecase.ProductDetail) *ProductDetailResponse {
	reviews := detail.Reviews
	if reviews == nil {
		reviews = []*entity.Review{}
	}

	return &ProductDetailResponse{
		ProductResponse: newProductResponse(detail.Product, detail.Seller),
		Reviews:         reviews,
		AverageRating:   detail.AverageRating,
		Related:         newProductItems(detail.Related),
		Liked:           detail.Liked,
	}
}

func newCartResponse(view *usecase.CartView) *CartResponse {
	items := make([]*CartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, &CartLineResponse{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Price:      money(line.Price),
			Image:      line.Image,
			SellerID:   line.SellerID,
			StockCount: line.StockCount,
			Quantity:   line.Quantity,
			LineTotal:  money(line.LineTotal()),
		})
	}

	return &CartResponse{
		Items:     items,
		ItemCount: view.ItemCount,
		Subtotal:  money(view.Subtotal),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
