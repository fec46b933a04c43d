package user

import "vyaha-be/internal/apperror"

var (
	// -- Validation --
	ErrMissingFields    = apperror.New(apperror.KindValidation, "all fields are required")
	ErrWeakPassword     = apperror.Validation("invalid password", map[string]string{"password": "must be at least 6 characters"})
	ErrInvalidRole      = apperror.New(apperror.KindValidation, "role must be customer or seller")
	ErrInvalidOTP       = apperror.New(apperror.KindValidation, "invalid or expired OTP")
	ErrInvalidReset     = apperror.New(apperror.KindValidation, "invalid or expired reset token")
	ErrAlreadyVerified  = apperror.New(apperror.KindValidation, "account already verified")
	ErrMissingStoreName = apperror.Validation("invalid seller signup", map[string]string{"store_name": "required"})

	// -- Authentication --
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid credentials")
	ErrNotVerified        = apperror.New(apperror.KindUnauthorized, "please verify your email first")
	ErrRoleMismatch       = apperror.New(apperror.KindForbidden, "account does not have this role")
	ErrSellerOnly         = apperror.New(apperror.KindForbidden, "only sellers have a store profile")

	// -- Resource State --
	ErrEmailExists     = apperror.New(apperror.KindConflict, "email already registered")
	ErrUserNotFound    = apperror.New(apperror.KindNotFound, "user not found")
	ErrProfileNotFound = apperror.New(apperror.KindNotFound, "seller profile not found")
)
