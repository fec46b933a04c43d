package user

import (
	"context"
	"database/sql"
	"errors"

	"vyaha-be/internal/logger"

	"go.uber.org/zap"
)

// GetSellerProfile fetches a seller's store profile by user ID.
func (r *repository) GetSellerProfile(ctx context.Context, userID string) (*SellerProfile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetSellerProfile"),
	)

	query := `
		SELECT sp.user_id, sp.store_name, sp.store_address, sp.city, sp.state,
			sp.pincode, sp.phone, sp.website, sp.created_at, sp.updated_at, u.email
		FROM seller_profiles sp
		INNER JOIN users u ON sp.user_id = u.id
		WHERE sp.user_id = $1
	`

	var p SellerProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.StoreName, &p.StoreAddress, &p.City, &p.State,
		&p.Pincode, &p.Phone, &p.Website, &p.CreatedAt, &p.UpdatedAt, &p.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("profile not found")
			return nil, ErrProfileNotFound
		}
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

// UpdateSellerProfile keeps existing values for nil fields.
func (r *repository) UpdateSellerProfile(ctx context.Context, params UpdateProfileParams) (*SellerProfile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateSellerProfile"),
	)

	query := `
		UPDATE seller_profiles
		SET store_name = COALESCE($2, store_name),
			store_address = COALESCE($3, store_address),
			city = COALESCE($4, city),
			state = COALESCE($5, state),
			pincode = COALESCE($6, pincode),
			phone = COALESCE($7, phone),
			website = COALESCE($8, website),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, store_name, store_address, city, state, pincode, phone, website, created_at, updated_at
	`

	var p SellerProfile
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.StoreName, params.StoreAddress, params.City,
		params.State, params.Pincode, params.Phone, params.Website,
	).Scan(
		&p.UserID, &p.StoreName, &p.StoreAddress, &p.City, &p.State,
		&p.Pincode, &p.Phone, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated successfully")
	return &p, nil
}
