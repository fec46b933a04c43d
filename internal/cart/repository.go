package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vyaha-be/internal/db"
	"vyaha-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetByUser returns nil when the customer has never added anything.
func (r *repository) GetByUser(ctx context.Context, userID string) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByUser"),
	)

	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, version, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.Version, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity, added_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY added_at ASC, product_id ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.AddedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		c.Lines = append(c.Lines, l)
	}

	return &c, rows.Err()
}

// Save persists the whole line set in one transaction. The cart row is
// created on first save; afterwards the write only lands if the stored
// version still matches, otherwise ErrCartConflict.
func (r *repository) Save(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.Int("version", c.Version),
	)

	id := c.ID
	var (
		version   int
		updatedAt time.Time
		createdAt = c.CreatedAt
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if id == "" {
			id = uuid.NewString()
			err = tx.QueryRowContext(ctx, `
				INSERT INTO carts (id, user_id)
				VALUES ($1, $2)
				ON CONFLICT (user_id) DO NOTHING
				RETURNING version, created_at, updated_at
			`, id, c.UserID).Scan(&version, &createdAt, &updatedAt)
		} else {
			err = tx.QueryRowContext(ctx, `
				UPDATE carts
				SET version = version + 1,
					updated_at = NOW()
				WHERE id = $1 AND version = $2
				RETURNING version, updated_at
			`, id, c.Version).Scan(&version, &updatedAt)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartConflict
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, id); err != nil {
			return err
		}

		for _, l := range c.Lines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (cart_id, product_id, quantity, added_at)
				VALUES ($1, $2, $3, $4)
			`, id, l.ProductID, l.Quantity, l.AddedAt); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCartConflict) {
			log.Warn("stale cart write rejected", zap.String("cart_id", id))
		} else {
			log.Error("failed to save cart", zap.Error(err))
		}
		return err
	}

	c.ID = id
	c.Version = version
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return nil
}

// ClearTx empties a cart inside the caller's transaction, guarded by the
// version the caller read.
func ClearTx(ctx context.Context, tx *sql.Tx, cartID string, version int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $2
	`, cartID, version)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartConflict
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
