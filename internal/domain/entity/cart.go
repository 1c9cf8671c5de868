package entity

import "github.com/shopspring/decimal"

// CartLine is one line item of a client-owned cart, keyed by ProductID.
type CartLine struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	SellerID   string          `json:"seller_id"`
	StockCount int             `json:"stock_count"` // Stock at the time of the last mutation.
	Quantity   int             `json:"quantity"`
}

// LineTotal returns price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewCartLine snapshots the display fields of a product into a line with quantity 1.
func NewCartLine(p *Product) CartLine {
	line := CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		SellerID:   p.SellerID,
		StockCount: p.StockCount,
		Quantity:   1,
	}
	if len(p.Images) > 0 {
		line.Image = p.Images[0]
	}

	return line
}
