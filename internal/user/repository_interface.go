package user

import (
	"context"
	"encoding/json"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
	UpdateKYC(ctx context.Context, id int, kycStatus string, bankDetails json.RawMessage) (*User, error)
}
