package gift

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGiftNotFound = errors.New("gift not found")

type Repository interface {
	GetByID(ctx context.Context, id int) (*Gift, error)
	List(ctx context.Context) ([]Gift, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gift, error) {
	g := &Gift{}
	err := r.db.GetContext(ctx, g, `
		SELECT id, name, image_url, animation_url, coin_cost, created_at
		FROM gifts
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGiftNotFound
	}
	return g, err
}

func (r *repository) List(ctx context.Context) ([]Gift, error) {
	gifts := []Gift{}
	err := r.db.SelectContext(ctx, &gifts, `
		SELECT id, name, image_url, animation_url, coin_cost, created_at
		FROM gifts
		ORDER BY coin_cost ASC
	`)
	return gifts, err
}
