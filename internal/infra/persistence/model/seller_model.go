package model

import "time"

// SellerModel mirrors the 'sellers' table. Profiles are owned by the identity
// service; the catalog only reads them.
type SellerModel struct {
	ID          string  `gorm:"type:varchar(64);primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	City        string  `gorm:"type:varchar(100)"`
	State       string  `gorm:"type:varchar(100)"`
	Rating      float64 `gorm:"not null;default:0"`
	Verified    bool    `gorm:"not null;default:false"`
	TotalSales  int     `gorm:"not null;default:0"`
	MemberSince time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerModel) TableName() string {
	return "sellers"
}
