package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Entry describes one ledger row written alongside a balance mutation.
type Entry struct {
	Type        string
	Description string
	ExternalRef *string
}

// Repository is the ledger store: account balances plus the append-only
// transaction log. Balances are only ever written through Credit, Debit,
// Transfer and DebitPending; each call writes its ledger rows in the
// same database transaction as the balance update.
type Repository interface {
	// Balance returns the current coin balance for an account.
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)

	// Credit increases the balance and writes one completed ledger row
	// of +amount. Amount must be positive.
	Credit(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error)

	// Debit decreases the balance and writes one completed ledger row
	// of -amount. Fails with ErrInsufficientFunds before any effect.
	Debit(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error)

	// DebitPending decreases the balance now but records the ledger row
	// as pending; settlement later flips it to a terminal status with no
	// further balance effect. Used by payouts.
	DebitPending(ctx context.Context, userID int, amount decimal.Decimal, e Entry) (*Transaction, error)

	// Transfer debits `from` by amount and credits `to` by
	// amount*(1-feeRate) as one atomic unit, writing a completed -amount
	// row for the sender and a completed +net row for the receiver. The
	// fee is platform margin and is not credited anywhere.
	Transfer(ctx context.Context, fromID, toID int, amount, feeRate decimal.Decimal, debit, credit Entry) (*Transaction, *Transaction, error)

	// CreatePending appends a pending ledger row without touching any
	// balance. Used for purchase/subscription checkouts awaiting
	// settlement.
	CreatePending(ctx context.Context, userID int, txType string, amount decimal.Decimal, currency, externalRef, description string) (*Transaction, error)

	GetByID(ctx context.Context, id int) (*Transaction, error)
	GetByExternalRef(ctx context.Context, externalRef string) (*Transaction, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]Transaction, error)

	// SumCompleted sums completed amounts for an account over a set of
	// transaction kinds.
	SumCompleted(ctx context.Context, userID int, types []string) (decimal.Decimal, error)
}
