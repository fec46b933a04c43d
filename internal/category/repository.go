package category

import (
	"context"
	"database/sql"
	"fmt"

	"vyaha-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListApproved(ctx context.Context, filter string, limit, offset int) ([]*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListApproved(ctx context.Context, filter string, limit, offset int) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListApproved"),
		zap.String("filter", filter),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	// ---------- BASE QUERY ----------
	query := `
		SELECT
			LOWER(p.category) AS name,
			COUNT(*) AS product_count
		FROM products p
		WHERE p.status = 'approved'
		  AND p.category <> ''
	`
	args := []any{}

	// ---------- FILTER ----------
	if filter != "" {
		args = append(args, "%"+filter+"%")
		query += fmt.Sprintf(" AND p.category ILIKE $%d", len(args))
	}

	query += " GROUP BY LOWER(p.category) ORDER BY name ASC"

	// ---------- PAGINATION ----------
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0, limit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}
