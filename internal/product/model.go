package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Product struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Quantity    int             `json:"quantity"`
	Status      Status          `json:"status"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductParams is a new listing; a nil Price means none was given.
type CreateProductParams struct {
	Title       string
	Description string
	Price       *decimal.Decimal
	Category    string
	Images      []string
	Quantity    int
}

// UpdateProductParams carries a partial edit; nil fields are left untouched.
type UpdateProductParams struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Images      []string
	Quantity    *int
}

func (p UpdateProductParams) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Price == nil &&
		p.Category == nil &&
		p.Images == nil &&
		p.Quantity == nil
}

type ListOptions struct {
	Status   *Status
	SellerID string
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ListResult struct {
	Items      []*Product `json:"items"`
	TotalCount int        `json:"total_count"`
}
