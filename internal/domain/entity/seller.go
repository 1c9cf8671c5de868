package entity

import "time"

// Seller is the artisan profile a product belongs to. The catalog only reads it.
type Seller struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Rating      float64   `json:"rating"`
	Verified    bool      `json:"verified"`
	TotalSales  int       `json:"total_sales"`
	MemberSince time.Time `json:"member_since"`
}

// Location composes the display location from city and state.
func (s *Seller) Location() string {
	switch {
	case s.City == "":
		return s.State
	case s.State == "":
		return s.City
	default:
		return s.City + ", " + s.State
	}
}

// SellerSummary is the seller view attached to products and search results.
type SellerSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	Verified    bool      `json:"verified"`
	TotalSales  int       `json:"total_sales"`
	MemberSince time.Time `json:"member_since"`
}

// Summary builds the summary view of the seller.
func (s *Seller) Summary() *SellerSummary {
	if s == nil {
		return nil
	}

	return &SellerSummary{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location(),
		Rating:      s.Rating,
		Verified:    s.Verified,
		TotalSales:  s.TotalSales,
		MemberSince: s.MemberSince,
	}
}
