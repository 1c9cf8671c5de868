package firestore

import (
	"time"

	"artisan/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// productDoc is the stored shape of a product. Prices are stored as numbers so
// range filters run server side.
type productDoc struct {
	SellerID      string     `firestore:"sellerId"`
	Name          string     `firestore:"name"`
	Description   string     `firestore:"description"`
	Price         float64    `firestore:"price"`
	OriginalPrice *float64   `firestore:"originalPrice,omitempty"`
	Category      string     `firestore:"category"`
	Tags          []string   `firestore:"tags"`
	Materials     []string   `firestore:"materials"`
	Dimensions    string     `firestore:"dimensions"`
	StockCount    int        `firestore:"stockCount"`
	Images        []string   `firestore:"images"`
	IsActive      bool       `firestore:"isActive"`
	LikeCount     int        `firestore:"likeCount"`
	Rating        float64    `firestore:"rating"`
	ReviewCount   int        `firestore:"reviewCount"`
	CreatedAt     time.Time  `firestore:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt"`
	DeletedAt     *time.Time `firestore:"deletedAt,omitempty"`
}

type sellerDoc struct {
	Name        string    `firestore:"name"`
	City        string    `firestore:"city"`
	State       string    `firestore:"state"`
	Rating      float64   `firestore:"rating"`
	Verified    bool      `firestore:"verified"`
	TotalSales  int       `firestore:"totalSales"`
	MemberSince time.Time `firestore:"memberSince"`
}

type likeDoc struct {
	UserID    string    `firestore:"userId"`
	ProductID string    `firestore:"productId"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type reviewDoc struct {
	ProductID string    `firestore:"productId"`
	UserID    string    `firestore:"userId"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func toProductDomain(id string, doc *productDoc) *entity.Product {
	product := &entity.Product{
		ID:          id,
		SellerID:    doc.SellerID,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       decimal.NewFromFloat(doc.Price),
		Category:    entity.Category(doc.Category),
		Tags:        doc.Tags,
		Materials:   doc.Materials,
		Dimensions:  doc.Dimensions,
		StockCount:  doc.StockCount,
		Images:      doc.Images,
		IsActive:    doc.IsActive,
		LikeCount:   doc.LikeCount,
		Rating:      doc.Rating,
		ReviewCount: doc.ReviewCount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		DeletedAt:   doc.DeletedAt,
	}
	if doc.OriginalPrice != nil {
		original := decimal.NewFromFloat(*doc.OriginalPrice)
		product.OriginalPrice = &original
	}

	return product
}

func fromProductDomain(product *entity.Product) *productDoc {
	doc := &productDoc{
		SellerID:    product.SellerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.InexactFloat64(),
		Category:    product.Category.String(),
		Tags:        product.Tags,
		Materials:   product.Materials,
		Dimensions:  product.Dimensions,
		StockCount:  product.StockCount,
		Images:      product.Images,
		IsActive:    product.IsActive,
		LikeCount:   product.LikeCount,
		Rating:      product.Rating,
		ReviewCount: product.ReviewCount,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
		DeletedAt:   product.DeletedAt,
	}
	if product.OriginalPrice != nil {
		original := product.OriginalPrice.InexactFloat64()
		doc.OriginalPrice = &original
	}

	return doc
}

func toSellerDomain(id string, doc *sellerDoc) *entity.Seller {
	return &entity.Seller{
		ID:          id,
		Name:        doc.Name,
		City:        doc.City,
		State:       doc.State,
		Rating:      doc.Rating,
		Verified:    doc.Verified,
		TotalSales:  doc.TotalSales,
		MemberSince: doc.MemberSince,
	}
}
