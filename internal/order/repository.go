package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vyaha-be/internal/cart"
	"vyaha-be/internal/db"
	"vyaha-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// Create persists o with its items and empties the source cart in the
	// same transaction.
	Create(ctx context.Context, o *Order, cartID string, cartVersion int) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, int, error)
	UpdateStatus(ctx context.Context, o *Order, to Status, deliveredAt *time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order, cartID string, cartVersion int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
		zap.String("cart_id", cartID),
	)

	var createdAt, updatedAt time.Time

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// 1. Insert order
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (
				id, user_id,
				subtotal, shipping_fee, tax, total,
				payment_method, status,
				ship_full_name, ship_phone, ship_street,
				ship_city, ship_state, ship_zip
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			RETURNING created_at, updated_at
		`,
			o.ID,
			o.UserID,
			o.Subtotal,
			o.ShippingFee,
			o.Tax,
			o.Total,
			o.PaymentMethod,
			o.Status,
			o.ShippingAddress.FullName,
			o.ShippingAddress.Phone,
			o.ShippingAddress.Street,
			o.ShippingAddress.City,
			o.ShippingAddress.State,
			o.ShippingAddress.Zip,
		).Scan(&createdAt, &updatedAt)
		if err != nil {
			return err
		}

		// 2. Insert item snapshots
		for i := range o.Items {
			it := &o.Items[i]
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (
					order_id, product_id, seller_id, title, image,
					unit_price, quantity, line_total
				)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
				RETURNING id
			`,
				o.ID,
				it.ProductID,
				it.SellerID,
				it.Title,
				it.Image,
				it.UnitPrice,
				it.Quantity,
				it.LineTotal,
			).Scan(&it.ID)
			if err != nil {
				return err
			}
			it.OrderID = o.ID
		}

		// 3. Empty the cart
		return cart.ClearTx(ctx, tx, cartID, cartVersion)
	})

	if err != nil {
		log.Error("order transaction failed", zap.Error(err))
		return err
	}

	o.CreatedAt = createdAt
	o.UpdatedAt = updatedAt
	log.Info("order persisted", zap.Int("items", len(o.Items)))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.UserID != "" {
		args = append(args, opts.UserID)
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if opts.SellerID != "" {
		args = append(args, opts.SellerID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM order_items si WHERE si.order_id = o.id AND si.seller_id = $%d)", len(args)))
	}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}

	whereSQL := strings.Join(where, " AND ")

	// ---------- count ----------
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders o WHERE `+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- pagination ----------
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE %s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, whereSQL, len(args)+1, len(args)+2)
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*Order, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus only lands if the stored status still equals o.Status.
func (r *repository) UpdateStatus(ctx context.Context, o *Order, to Status, deliveredAt *time.Time) error {
	var (
		updatedAt time.Time
		delivered sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1,
			delivered_at = COALESCE($2, delivered_at),
			updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING updated_at, delivered_at
	`, to, deliveredAt, o.ID, o.Status).Scan(&updatedAt, &delivered)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusConflict
	}
	if err != nil {
		return err
	}

	o.Status = to
	o.UpdatedAt = updatedAt
	if delivered.Valid {
		t := delivered.Time
		o.DeliveredAt = &t
	}
	return nil
}

// attachItems loads items for all orders with a single query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM order_items oi
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id ASC
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}
