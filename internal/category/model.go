package category

// Category is derived from the approved catalog rather than stored on its own.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}
