package settlement

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// casPending is the compare-and-swap that makes settlement exactly-once:
// only the delivery that observes status='pending' flips it.
func casPending(ctx context.Context, tx *sqlx.Tx, txID int, status string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, status, txID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *repository) CompleteAndCredit(ctx context.Context, txID, userID int, coins decimal.Decimal) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	applied, err := casPending(ctx, tx, txID, wallet.StatusCompleted)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	var balance decimal.Decimal
	err = tx.GetContext(ctx, &balance,
		`SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, wallet.ErrAccountNotFound
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET wallet_balance = $1, updated_at = NOW() WHERE id = $2`,
		balance.Add(coins), userID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *repository) CompleteAndActivate(ctx context.Context, txID, subscriptionID int, endDate time.Time) (bool, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, false, err
	}
	defer tx.Rollback()

	applied, err := casPending(ctx, tx, txID, wallet.StatusCompleted)
	if err != nil {
		return false, false, err
	}
	if !applied {
		return false, false, nil
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'active', end_date = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, endDate, subscriptionID)
	if err != nil {
		return false, false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, false, err
	}

	return true, rows == 1, tx.Commit()
}

func (r *repository) MarkTerminal(ctx context.Context, txID int, status string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	applied, err := casPending(ctx, tx, txID, status)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	return true, tx.Commit()
}
