package user

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCRejected = "rejected"
)

// User is an account row. WalletBalance is only ever written through
// wallet.Repository; this package reads it for display.
type User struct {
	ID            int             `db:"id" json:"id"`
	Username      string          `db:"username" json:"username"`
	Email         string          `db:"email" json:"email"`
	PasswordHash  string          `db:"password_hash" json:"-"`
	WalletBalance decimal.Decimal `db:"wallet_balance" json:"wallet_balance"`
	Role          string          `db:"role" json:"role"`
	KYCStatus     string          `db:"kyc_status" json:"kyc_status"`
	BankDetails   json.RawMessage `db:"bank_details" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user creator"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
