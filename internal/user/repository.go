package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vyaha-be/internal/db"
	"vyaha-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User, profile *SellerProfile) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, userID string) error
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	GetSellerProfile(ctx context.Context, userID string) (*SellerProfile, error)
	UpdateSellerProfile(ctx context.Context, params UpdateProfileParams) (*SellerProfile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, name, email, password_hash, role, verified,
	otp_code, otp_expires_at, reset_token, reset_token_expires_at,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Verified,
		&u.OTPCode, &u.OTPExpiresAt, &u.ResetToken, &u.ResetTokenExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and, for sellers, the store profile together.
func (r *repository) Create(ctx context.Context, u *User, profile *SellerProfile) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
		zap.String("role", string(u.Role)),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO users (id, name, email, password_hash, role, verified, otp_code, otp_expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Verified, u.OTPCode, u.OTPExpiresAt,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return err
		}

		if profile == nil {
			return nil
		}

		profile.UserID = u.ID
		return tx.QueryRowContext(ctx, `
			INSERT INTO seller_profiles (user_id, store_name)
			VALUES ($1, $2)
			RETURNING created_at, updated_at
		`, profile.UserID, profile.StoreName).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	})

	if db.IsUniqueViolation(err) {
		log.Info("email already registered")
		return ErrEmailExists
	}
	if err != nil {
		log.Error("db: failed to insert user", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *repository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *repository) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return r.execOne(ctx, `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`, userID, code, expiresAt)
}

func (r *repository) MarkVerified(ctx context.Context, userID string) error {
	return r.execOne(ctx, `
		UPDATE users
		SET verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID)
}

func (r *repository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.execOne(ctx, `
		UPDATE users
		SET reset_token = $2, reset_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`, userID, token, expiresAt)
}

// UpdatePassword also consumes any outstanding reset token.
func (r *repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.execOne(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID, passwordHash)
}

func (r *repository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: user update failed", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
