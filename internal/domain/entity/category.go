package entity

// Category is the closed set of craft categories a product can belong to.
type Category string

const (
	CategoryPottery   Category = "pottery"
	CategoryWoodwork  Category = "woodwork"
	CategoryTextiles  Category = "textiles"
	CategoryJewelry   Category = "jewelry"
	CategoryMetalwork Category = "metalwork"
	CategoryLeather   Category = "leather"
	CategoryGlass     Category = "glass"
	CategoryPainting  Category = "painting"
	CategorySculpture Category = "sculpture"

	// CategoryAll is the filter value that disables category filtering.
	CategoryAll Category = "all"
)

// Categories lists every concrete category in display order.
var Categories = []Category{
	CategoryPottery,
	CategoryWoodwork,
	CategoryTextiles,
	CategoryJewelry,
	CategoryMetalwork,
	CategoryLeather,
	CategoryGlass,
	CategoryPainting,
	CategorySculpture,
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the concrete categories. Matching is case-sensitive.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// IsAll reports whether c disables category filtering.
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}
