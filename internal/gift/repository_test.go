package gift

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestGetByID_ReturnsGift(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, image_url, animation_url, coin_cost, created_at`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "animation_url", "coin_cost", "created_at"}).
			AddRow(3, "Confetti", nil, nil, "50", time.Now()))

	g, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Confetti", g.Name)
	assert.Equal(t, "50", g.CoinCost.String())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM gifts`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "animation_url", "coin_cost", "created_at"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGiftNotFound)
}

func TestList_OrderedByCost(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY coin_cost ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "animation_url", "coin_cost", "created_at"}).
			AddRow(1, "Rose", nil, nil, "10", time.Now()).
			AddRow(2, "Heart", nil, nil, "20", time.Now()))

	gifts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, gifts, 2)
	assert.Equal(t, "Rose", gifts[0].Name)
}
