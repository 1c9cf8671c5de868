// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
	// lockRows makes single-row reads take a row lock, used inside transactions.
	lockRows bool
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// CreateProduct persists a new product.
func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("product already exists")
		}

		return storeError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindProductByID retrieves a product by ID, active or not.
func (repo *productRepository) FindProductByID(ctx context.Context, id string) (*entity.Product, error) {
	var productM model.ProductModel

	query := repo.db.WithContext(ctx)
	if repo.lockRows {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	if err := query.Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, storeError(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindProducts evaluates the pushdown predicates in SQL.
func (repo *productRepository) FindProducts(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	db := applyProductQuery(repo.db.WithContext(ctx), query)
	if query.Limit > 0 {
		db = db.Order("created_at DESC").Order("id").Limit(query.Limit)
	}

	if err := db.Find(&productModels).Error; err != nil {
		return nil, storeError(err, "failed to find products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// CountProducts counts the products matching query.
func (repo *productRepository) CountProducts(ctx context.Context, query repository.ProductQuery) (int, error) {
	var count int64

	db := applyProductQuery(repo.db.WithContext(ctx).Model(&model.ProductModel{}), query)
	if err := db.Count(&count).Error; err != nil {
		return 0, storeError(err, "failed to count products")
	}

	return int(count), nil
}

// UpdateProduct overwrites the mutable fields of a product.
func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select("name", "description", "price", "original_price", "category", "tags",
			"materials", "dimensions", "stock_count", "images", "is_active", "deleted_at", "updated_at").
		Updates(productM)
	if result.Error != nil {
		return storeError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// SetLikeCount writes the cached like counter.
func (repo *productRepository) SetLikeCount(ctx context.Context, id string, count int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("like_count", count)
	if result.Error != nil {
		return storeError(result.Error, "failed to set like count")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}

	return nil
}

// SoftDeleteProduct deactivates the product and stamps deleted_at.
func (repo *productRepository) SoftDeleteProduct(ctx context.Context, id string, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  false,
			"deleted_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return storeError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}

	return nil
}

func applyProductQuery(db *gorm.DB, query repository.ProductQuery) *gorm.DB {
	if query.IsActive != nil {
		db = db.Where("is_active = ?", *query.IsActive)
	}
	if !query.Category.IsAll() {
		db = db.Where("category = ?", query.Category.String())
	}
	if query.SellerID != "" {
		db = db.Where("seller_id = ?", query.SellerID)
	}
	if query.MinPrice != nil {
		db = db.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		db = db.Where("price <= ?", *query.MaxPrice)
	}

	return db
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ID:          data.ID,
		SellerID:    data.SellerID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    entity.Category(data.Category),
		Tags:        []string(data.Tags),
		Materials:   []string(data.Materials),
		Dimensions:  data.Dimensions,
		StockCount:  data.StockCount,
		Images:      []string(data.Images),
		IsActive:    data.IsActive,
		LikeCount:   data.LikeCount,
		Rating:      data.Rating,
		ReviewCount: data.ReviewCount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		DeletedAt:   data.DeletedAt,
	}
	if data.OriginalPrice.Valid {
		original := data.OriginalPrice.Decimal
		product.OriginalPrice = &original
	}

	return product
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	productM := &model.ProductModel{
		ID:          data.ID,
		SellerID:    data.SellerID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category.String(),
		Tags:        pqArray(data.Tags),
		Materials:   pqArray(data.Materials),
		Dimensions:  data.Dimensions,
		StockCount:  data.StockCount,
		Images:      pqArray(data.Images),
		IsActive:    data.IsActive,
		LikeCount:   data.LikeCount,
		Rating:      data.Rating,
		ReviewCount: data.ReviewCount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		DeletedAt:   data.DeletedAt,
	}
	if data.OriginalPrice != nil {
		productM.OriginalPrice = decimal.NewNullDecimal(*data.OriginalPrice)
	}

	return productM
}

// pqArray maps nil to an empty array so array columns never hold NULL.
func pqArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}
