package product

import (
	"github.com/lib/pq"
)

const selectColumns = `
	p.id,
	p.seller_id,
	COALESCE(sp.store_name, ''),
	p.title,
	p.description,
	p.price,
	p.category,
	p.images,
	p.quantity,
	p.status,
	p.version,
	p.created_at,
	p.updated_at`

const returningColumns = `
	id,
	seller_id,
	'',
	title,
	description,
	price,
	category,
	images,
	quantity,
	status,
	version,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct maps one products row (selectColumns order) to a Product.
func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	var images []string

	err := row.Scan(
		&p.ID,
		&p.SellerID,
		&p.SellerName,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Category,
		pq.Array(&images),
		&p.Quantity,
		&p.Status,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if images == nil {
		images = []string{}
	}
	p.Images = images
	return &p, nil
}
