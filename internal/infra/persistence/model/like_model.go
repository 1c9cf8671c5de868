package model

import "time"

// LikeModel mirrors the 'likes' table. The unique index on (user_id, product_id)
// is what keeps a pair from being liked twice.
type LikeModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_likes_user_product,priority:1"`
	ProductID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_likes_user_product,priority:2;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "likes"
}
