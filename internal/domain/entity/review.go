package entity

import "time"

// Review is a customer's rating of a product. Reviews are owned by a separate
// collaborator; the catalog only aggregates them.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
