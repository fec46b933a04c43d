package cart

import (
	"time"

	"vyaha-be/internal/pricing"

	"github.com/shopspring/decimal"
)

// Line is one stored (product, quantity) pair.
type Line struct {
	ProductID string
	Quantity  int
	AddedAt   time.Time
}

// Cart belongs to exactly one customer. Version is zero until the cart is
// first persisted.
type Cart struct {
	ID        string
	UserID    string
	Lines     []Line
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a line resolved against the current product state.
type Item struct {
	ProductID string          `json:"product_id"`
	SellerID  string          `json:"seller_id"`
	Title     string          `json:"title"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	AddedAt   time.Time       `json:"added_at"`
}

type Summary struct {
	Items []Item `json:"items"`
	pricing.CartSummary
}
