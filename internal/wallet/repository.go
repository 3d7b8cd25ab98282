package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient coin balance")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateExternalRef = errors.New("external reference already recorded")
)

const pqUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance,
		`SELECT wallet_balance FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrAccountNotFound
	}
	return balance, err
}

// lockBalance takes the row lock that serializes concurrent operations
// on one account for the rest of the database transaction.
func lockBalance(ctx context.Context, tx *sqlx.Tx, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance,
		`SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrAccountNotFound
	}
	return balance, err
}

func setBalance(ctx context.Context, tx *sqlx.Tx, userID int, balance decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET wallet_balance = $1, updated_at = NOW() WHERE id = $2`,
		balance, userID)
	return err
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, userID int, txType string, amount decimal.Decimal, currency, status string, externalRef *string, description string) (*Transaction, error) {
	t := &Transaction{}
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, currency, status, dodo_transaction_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, type, amount, currency, status, dodo_transaction_id, description, created_at, updated_at
	`, userID, txType, amount, currency, status, externalRef, description).StructScan(t)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateExternalRef
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) Credit(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := setBalance(ctx, tx, userID, balance.Add(amount)); err != nil {
		return nil, err
	}

	t, err := insertTransaction(ctx, tx, userID, e.Type, amount, CurrencyCoins, StatusCompleted, e.ExternalRef, e.Description)
	if err != nil {
		return nil, err
	}

	return t, tx.Commit()
}

func (r *repository) Debit(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error) {
	return r.debit(ctx, userID, amount, e, StatusCompleted)
}

func (r *repository) DebitPending(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error) {
	return r.debit(ctx, userID, amount, e, StatusPending)
}

func (r *repository) debit(ctx context.Context, userID int, amount decimal.Decimal, e Entry, status string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}

	if err := setBalance(ctx, tx, userID, balance.Sub(amount)); err != nil {
		return nil, err
	}

	t, err := insertTransaction(ctx, tx, userID, e.Type, amount.Neg(), CurrencyCoins, status, e.ExternalRef, e.Description)
	if err != nil {
		return nil, err
	}

	return t, tx.Commit()
}

func (r *repository) Transfer(ctx context.Context, fromID, toID int, amount, feeRate decimal.Decimal, debit, credit Entry) (*Transaction, *Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	// Lock both rows in ascending id order so two opposite-direction
	// transfers cannot deadlock.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	balances := make(map[int]decimal.Decimal, 2)
	for _, id := range []int{first, second} {
		b, err := lockBalance(ctx, tx, id)
		if err != nil {
			return nil, nil, err
		}
		balances[id] = b
	}

	if amount.GreaterThan(balances[fromID]) {
		return nil, nil, ErrInsufficientFunds
	}

	net := amount.Mul(decimal.NewFromInt(1).Sub(feeRate))

	if err := setBalance(ctx, tx, fromID, balances[fromID].Sub(amount)); err != nil {
		return nil, nil, err
	}
	if err := setBalance(ctx, tx, toID, balances[toID].Add(net)); err != nil {
		return nil, nil, err
	}

	debitTx, err := insertTransaction(ctx, tx, fromID, debit.Type, amount.Neg(), CurrencyCoins, StatusCompleted, debit.ExternalRef, debit.Description)
	if err != nil {
		return nil, nil, err
	}
	creditTx, err := insertTransaction(ctx, tx, toID, credit.Type, net, CurrencyCoins, StatusCompleted, credit.ExternalRef, credit.Description)
	if err != nil {
		return nil, nil, err
	}

	return debitTx, creditTx, tx.Commit()
}

func (r *repository) CreatePending(ctx context.Context, userID int, txType string, amount decimal.Decimal, currency, externalRef, description string) (*Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := insertTransaction(ctx, tx, userID, txType, amount, currency, StatusPending, &externalRef, description)
	if err != nil {
		return nil, err
	}

	return t, tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Transaction, error) {
	t := &Transaction{}
	err := r.db.GetContext(ctx, t, `
		SELECT id, user_id, type, amount, currency, status, dodo_transaction_id, description, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	return t, err
}

func (r *repository) GetByExternalRef(ctx context.Context, externalRef string) (*Transaction, error) {
	t := &Transaction{}
	err := r.db.GetContext(ctx, t, `
		SELECT id, user_id, type, amount, currency, status, dodo_transaction_id, description, created_at, updated_at
		FROM transactions
		WHERE dodo_transaction_id = $1
	`, externalRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	return t, err
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	txs := []Transaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, user_id, type, amount, currency, status, dodo_transaction_id, description, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return txs, err
}

func (r *repository) SumCompleted(ctx context.Context, userID int, types []string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND status = 'completed'
		  AND type = ANY($2)
	`, userID, pq.Array(types))
	return sum, err
}
