package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vyaha-be/internal/logger"
	"vyaha-be/internal/metrics"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
	Update(ctx context.Context, p *Product) error
	UpdateStatus(ctx context.Context, id string, status Status) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("seller_id", p.SellerID),
	)

	query := `
	INSERT INTO products (
		id,
		seller_id,
		title,
		description,
		price,
		category,
		images,
		quantity,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING version, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.SellerID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		pq.Array(p.Images),
		p.Quantity,
		p.Status,
	).Scan(&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return err
	}

	log.Info("product inserted", zap.String("product_id", p.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + selectColumns + `
	FROM products p
	LEFT JOIN seller_profiles sp ON sp.user_id = p.seller_id
	WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) (map[string]*Product, error) {
	result := make(map[string]*Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + selectColumns + `
	FROM products p
	LEFT JOIN seller_profiles sp ON sp.user_id = p.seller_id
	WHERE p.id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}

	return result, rows.Err()
}

// Update writes content fields and status, guarded by the version the caller
// read. A stale version yields ErrVersionConflict, a vanished row
// ErrProductNotFound.
func (r *repository) Update(ctx context.Context, p *Product) error {
	query := `
	UPDATE products
	SET title = $1,
		description = $2,
		price = $3,
		category = $4,
		images = $5,
		quantity = $6,
		status = $7,
		version = version + 1,
		updated_at = NOW()
	WHERE id = $8 AND version = $9
	RETURNING version, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		pq.Array(p.Images),
		p.Quantity,
		p.Status,
		p.ID,
		p.Version,
	).Scan(&p.Version, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a concurrent delete from a concurrent edit.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, p.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrVersionConflict
	}
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Product, error) {
	query := `
	UPDATE products
	SET status = $1,
		version = version + 1,
		updated_at = NOW()
	WHERE id = $2
	RETURNING ` + returningColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	timer := metrics.StartTimer()

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if opts.SellerID != "" {
		args = append(args, opts.SellerID)
		where = append(where, fmt.Sprintf("p.seller_id = $%d", len(args)))
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("LOWER(p.category) = LOWER($%d)", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	whereSQL := strings.Join(where, " AND ")

	// ---------- count ----------
	var total int
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- pagination ----------
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + selectColumns + `
	FROM products p
	LEFT JOIN seller_profiles sp ON sp.user_id = p.seller_id
	WHERE ` + whereSQL + `
	ORDER BY p.created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(items)),
		zap.Int("total", total),
		zap.Duration("duration", timer.Stop(&metrics.Default.CatalogQuery)),
	)

	return items, total, nil
}
