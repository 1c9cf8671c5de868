package model

import "time"

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	ProductID string `gorm:"type:varchar(64);not null;index"`
	UserID    string `gorm:"type:varchar(64);not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
