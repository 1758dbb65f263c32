package listing

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// DefaultCategoryLabel is used when the upstream record carries no category.
const DefaultCategoryLabel = "기타"

// productIDLength matches the length of identifiers generated for records without one.
const productIDLength = 9

// Listing is a normalized product record emitted by an adapter.
// Optional marketplace-only fields are pointers so they serialize as null elsewhere.
type Listing struct {
	Rank        int      `json:"rank"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	MallName    string   `json:"mallName"`
	Link        string   `json:"link"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	ProductID   string   `json:"productId"`
	Discount    *string  `json:"discount"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"reviewCount"`
}

// CategoryOrDefault returns the category label, falling back to DefaultCategoryLabel
func CategoryOrDefault(label string) string {
	if strings.TrimSpace(label) == "" {
		return DefaultCategoryLabel
	}
	return label
}

// NewProductID returns a random opaque base-36 token.
func NewProductID() string {
	id := uuid.New()
	text := new(big.Int).SetBytes(id[:]).Text(36)
	if len(text) < productIDLength {
		text = strings.Repeat("0", productIDLength-len(text)) + text
	}
	return text[:productIDLength]
}

// AssignRanks numbers items consecutively starting at start.
func AssignRanks(items []Listing, start int) {
	for i := range items {
		items[i].Rank = start + i
	}
}
