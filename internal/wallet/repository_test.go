package wallet

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockBalanceQuery = `SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`
	setBalanceQuery  = `UPDATE users SET wallet_balance = $1, updated_at = NOW() WHERE id = $2`
	insertTxQuery    = `INSERT INTO transactions (user_id, type, amount, currency, status, dodo_transaction_id, description) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, user_id, type, amount, currency, status, dodo_transaction_id, description, created_at, updated_at`
)

func setupRepoMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func txRows(id, userID int, txType, amount, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "type", "amount", "currency", "status",
		"dodo_transaction_id", "description", "created_at", "updated_at",
	}).AddRow(id, userID, txType, amount, CurrencyCoins, status, nil, "", time.Now(), time.Now())
}

func TestDebit_Success(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("100"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(70), 20).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WithArgs(20, TypeGiftSend, decimal.NewFromInt(-30), CurrencyCoins, StatusCompleted, nil, "gift").
		WillReturnRows(txRows(1, 20, TypeGiftSend, "-30", StatusCompleted))
	mock.ExpectCommit()

	tx, err := repo.Debit(context.Background(), 20, decimal.NewFromInt(30), Entry{Type: TypeGiftSend, Description: "gift"})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-30)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit_Success(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("100"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(150), 20).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WithArgs(20, TypeGiftReceive, decimal.NewFromInt(50), CurrencyCoins, StatusCompleted, nil, "").
		WillReturnRows(txRows(2, 20, TypeGiftReceive, "50", StatusCompleted))
	mock.ExpectCommit()

	tx, err := repo.Credit(context.Background(), 20, decimal.NewFromInt(50), Entry{Type: TypeGiftReceive})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(50)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebit_InsufficientFunds(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("10"))
	mock.ExpectRollback()

	_, err := repo.Debit(context.Background(), 20, decimal.NewFromInt(30), Entry{Type: TypeGiftSend})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebit_RejectsNonPositiveAmount(t *testing.T) {
	repo, _, close := setupRepoMock(t)
	defer close()

	_, err := repo.Debit(context.Background(), 20, decimal.Zero, Entry{Type: TypeGiftSend})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = repo.Credit(context.Background(), 20, decimal.NewFromInt(-5), Entry{Type: TypeGiftReceive})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDebit_AccountMissing(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Debit(context.Background(), 99, decimal.NewFromInt(5), Entry{Type: TypeGiftSend})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// A failure after the balance write but before the ledger insert must
// roll the whole unit back.
func TestDebit_RollsBackWhenLedgerInsertFails(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("100"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(70), 20).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Debit(context.Background(), 20, decimal.NewFromInt(30), Entry{Type: TypeGiftSend})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Scenario: sender 100, receiver 0, gift cost 20, commission 30% ->
// sender 80, receiver 14, ledger rows -20 and +14.
func TestTransfer_GiftWithCommission(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	// Sender id 3 < receiver id 9: locked in ascending order.
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("100"))
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("0"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(80), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(14), 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WithArgs(3, TypeGiftSend, decimal.NewFromInt(-20), CurrencyCoins, StatusCompleted, nil, "Sent Rose").
		WillReturnRows(txRows(11, 3, TypeGiftSend, "-20", StatusCompleted))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WithArgs(9, TypeGiftReceive, decimal.NewFromInt(14), CurrencyCoins, StatusCompleted, nil, "Received Rose").
		WillReturnRows(txRows(12, 9, TypeGiftReceive, "14", StatusCompleted))
	mock.ExpectCommit()

	debitTx, creditTx, err := repo.Transfer(
		context.Background(), 3, 9,
		decimal.NewFromInt(20), decimal.RequireFromString("0.3"),
		Entry{Type: TypeGiftSend, Description: "Sent Rose"},
		Entry{Type: TypeGiftReceive, Description: "Received Rose"},
	)
	require.NoError(t, err)
	assert.True(t, debitTx.Amount.Equal(decimal.NewFromInt(-20)))
	assert.True(t, creditTx.Amount.Equal(decimal.NewFromInt(14)))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Lock order must be ascending by account id even when the sender has
// the higher id.
func TestTransfer_LocksLowerIDFirst(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("0"))
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("50"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(40), 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(10), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WillReturnRows(txRows(21, 8, TypeGiftSend, "-10", StatusCompleted))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WillReturnRows(txRows(22, 2, TypeGiftReceive, "10", StatusCompleted))
	mock.ExpectCommit()

	_, _, err := repo.Transfer(
		context.Background(), 8, 2,
		decimal.NewFromInt(10), decimal.Zero,
		Entry{Type: TypeGiftSend},
		Entry{Type: TypeGiftReceive},
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_InsufficientFundsNoPartialEffect(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("5"))
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("0"))
	mock.ExpectRollback()

	_, _, err := repo.Transfer(
		context.Background(), 3, 9,
		decimal.NewFromInt(20), decimal.RequireFromString("0.3"),
		Entry{Type: TypeGiftSend},
		Entry{Type: TypeGiftReceive},
	)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_SelfTransferRejected(t *testing.T) {
	repo, _, close := setupRepoMock(t)
	defer close()

	_, _, err := repo.Transfer(
		context.Background(), 4, 4,
		decimal.NewFromInt(1), decimal.Zero,
		Entry{Type: TypeGiftSend}, Entry{Type: TypeGiftReceive},
	)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDebitPending_RecordsPendingRow(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	ref := "po_123"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockBalanceQuery)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("2000"))
	mock.ExpectExec(regexp.QuoteMeta(setBalanceQuery)).
		WithArgs(decimal.NewFromInt(500), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(insertTxQuery)).
		WithArgs(5, TypePayout, decimal.NewFromInt(-1500), CurrencyCoins, StatusPending, &ref, "payout").
		WillReturnRows(txRows(31, 5, TypePayout, "-1500", StatusPending))
	mock.ExpectCommit()

	tx, err := repo.DebitPending(context.Background(), 5, decimal.NewFromInt(1500), Entry{Type: TypePayout, Description: "payout", ExternalRef: &ref})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, tx.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByExternalRef_NotFound(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectQuery("SELECT id, user_id, type, amount").
		WithArgs("cs_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByExternalRef(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestSumCompleted(t *testing.T) {
	repo, mock, close := setupRepoMock(t)
	defer close()

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("350.50"))

	sum, err := repo.SumCompleted(context.Background(), 9, []string{TypeGiftReceive, TypeSubscription})
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("350.50")))
}
