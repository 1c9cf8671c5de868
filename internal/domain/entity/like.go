package entity

import "time"

// Like is one user's endorsement of one product. Its existence is the source of
// truth for "has this user liked this product".
type Like struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeKey is the deterministic identity of the (user, product) pair.
func LikeKey(userID, productID string) string {
	return userID + "_" + productID
}
