package order

import (
	"database/sql"
)

const orderColumns = `
	o.id,
	o.user_id,
	o.subtotal,
	o.shipping_fee,
	o.tax,
	o.total,
	o.payment_method,
	o.status,
	o.ship_full_name,
	o.ship_phone,
	o.ship_street,
	o.ship_city,
	o.ship_state,
	o.ship_zip,
	o.created_at,
	o.updated_at,
	o.delivered_at`

const itemColumns = `
	oi.id,
	oi.order_id,
	oi.product_id,
	oi.seller_id,
	oi.title,
	oi.image,
	oi.unit_price,
	oi.quantity,
	oi.line_total`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		deliveredAt sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Subtotal,
		&o.ShippingFee,
		&o.Tax,
		&o.Total,
		&o.PaymentMethod,
		&o.Status,
		&o.ShippingAddress.FullName,
		&o.ShippingAddress.Phone,
		&o.ShippingAddress.Street,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.Zip,
		&o.CreatedAt,
		&o.UpdatedAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, err
	}

	if deliveredAt.Valid {
		t := deliveredAt.Time
		o.DeliveredAt = &t
	}
	o.Items = []Item{}
	return &o, nil
}

func scanItem(row rowScanner) (Item, error) {
	var it Item
	err := row.Scan(
		&it.ID,
		&it.OrderID,
		&it.ProductID,
		&it.SellerID,
		&it.Title,
		&it.Image,
		&it.UnitPrice,
		&it.Quantity,
		&it.LineTotal,
	)
	return it, err
}
