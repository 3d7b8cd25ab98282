package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, email, password_hash, wallet_balance, role, kyc_status, bank_details, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash, role string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		username, email, passwordHash, role,
	).StructScan(u)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	return exists, err
}

func (r *repository) ListByRole(ctx context.Context, role string) ([]User, error) {
	users := []User{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, role)
	return users, err
}

func (r *repository) UpdateKYC(ctx context.Context, id int, kycStatus string, bankDetails json.RawMessage) (*User, error) {
	u := &User{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE users
		SET kyc_status = $1, bank_details = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns,
		kycStatus, bankDetails, id,
	).StructScan(u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
