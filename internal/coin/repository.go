package coin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPackageNotFound = errors.New("coin package not found")

type Repository interface {
	GetByID(ctx context.Context, id int) (*CoinPackage, error)
	List(ctx context.Context) ([]CoinPackage, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int) (*CoinPackage, error) {
	p := &CoinPackage{}
	err := r.db.GetContext(ctx, p, `
		SELECT id, name, price, coins, created_at
		FROM coin_packages
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context) ([]CoinPackage, error) {
	packages := []CoinPackage{}
	err := r.db.SelectContext(ctx, &packages, `
		SELECT id, name, price, coins, created_at
		FROM coin_packages
		ORDER BY price ASC
	`)
	return packages, err
}
