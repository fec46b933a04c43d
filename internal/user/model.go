package user

import (
	"time"

	"vyaha-be/internal/auth"
)

type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                auth.Role  `json:"role"`
	Verified            bool       `json:"verified"`
	OTPCode             *string    `json:"-"`
	OTPExpiresAt        *time.Time `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

type SellerProfile struct {
	UserID       string    `json:"user_id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	Phone        string    `json:"phone"`
	Website      string    `json:"website"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SignUpParams struct {
	Name      string
	Email     string
	Password  string
	Role      auth.Role
	StoreName string
}

// UpdateProfileParams carries a partial seller profile edit; nil fields are kept.
type UpdateProfileParams struct {
	UserID       string
	StoreName    *string
	StoreAddress *string
	City         *string
	State        *string
	Pincode      *string
	Phone        *string
	Website      *string
}
