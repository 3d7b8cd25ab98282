package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository applies settlement transitions. Every method guards the
// pending→terminal flip with a conditional update on status='pending';
// the boolean result reports whether this call won the flip. A false
// result means a duplicate or raced delivery and must not be retried.
type Repository interface {
	// CompleteAndCredit flips the transaction to completed and credits
	// the account's wallet in the same database transaction.
	CompleteAndCredit(ctx context.Context, txID, userID int, coins decimal.Decimal) (bool, error)

	// CompleteAndActivate flips the transaction to completed and
	// promotes the pending subscription to active with the given end
	// date, atomically. activated is false when the subscription had
	// already left pending (for example cancelled before payment).
	CompleteAndActivate(ctx context.Context, txID, subscriptionID int, endDate time.Time) (applied, activated bool, err error)

	// MarkTerminal flips the transaction to the given terminal status
	// with no side effects.
	MarkTerminal(ctx context.Context, txID int, status string) (bool, error)
}
