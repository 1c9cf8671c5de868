// Package model holds the GORM table mappings of the postgres store.
package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID            string              `gorm:"type:varchar(64);primaryKey"`
	SellerID      string              `gorm:"type:varchar(64);not null;index"`
	Name          string              `gorm:"type:varchar(200);not null"`
	Description   string              `gorm:"type:text"`
	Price         decimal.Decimal     `gorm:"type:numeric(12,2);not null;index"`
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Category      string              `gorm:"type:varchar(32);not null;index:idx_products_active_category,priority:2"`
	Tags          pq.StringArray      `gorm:"type:text[]"`
	Materials     pq.StringArray      `gorm:"type:text[]"`
	Dimensions    string              `gorm:"type:varchar(200)"`
	StockCount    int                 `gorm:"not null;default:0"`
	Images        pq.StringArray      `gorm:"type:text[]"`
	IsActive      bool                `gorm:"not null;default:true;index:idx_products_active_category,priority:1"`
	LikeCount     int                 `gorm:"not null;default:0"`
	Rating        float64             `gorm:"not null;default:0"`
	ReviewCount   int                 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
