package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. Wallet-denominated kinds (everything except
// subscription) move the coin balance; their completed amounts replay
// to the account balance.
const (
	TypeCoinPurchase = "coin_purchase"
	TypeGiftSend     = "gift_send"
	TypeGiftReceive  = "gift_receive"
	TypeSubscription = "subscription"
	TypePayout       = "payout"
	TypeRefund       = "refund"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

const (
	CurrencyCoins = "COINS"
	CurrencyINR   = "INR"
)

// Transaction is an append-only ledger entry. Amount and type never
// change after insert; only status moves, and only via settlement.
type Transaction struct {
	ID                int             `db:"id" json:"id"`
	UserID            int             `db:"user_id" json:"user_id"`
	Type              string          `db:"type" json:"type"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Currency          string          `db:"currency" json:"currency"`
	Status            string          `db:"status" json:"status"`
	DodoTransactionID *string         `db:"dodo_transaction_id" json:"dodo_transaction_id,omitempty"`
	Description       string          `db:"description" json:"description"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// EarningsSummary backs the creator dashboard.
type EarningsSummary struct {
	WalletBalance      decimal.Decimal `json:"wallet_balance"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalPayouts       decimal.Decimal `json:"total_payouts"`
	AvailableForPayout decimal.Decimal `json:"available_for_payout"`
}
