package gift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gift is immutable catalog data; the core only reads it.
type Gift struct {
	ID           int             `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	ImageURL     *string         `db:"image_url" json:"image_url,omitempty"`
	AnimationURL *string         `db:"animation_url" json:"animation_url,omitempty"`
	CoinCost     decimal.Decimal `db:"coin_cost" json:"coin_cost"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

type SendRequest struct {
	GiftID     int `json:"gift_id" binding:"required"`
	ReceiverID int `json:"receiver_id" binding:"required"`
}

type SendResult struct {
	Gift          *Gift           `json:"gift"`
	SenderBalance decimal.Decimal `json:"sender_balance"`
	DebitTxID     int             `json:"debit_transaction_id"`
	CreditTxID    int             `json:"credit_transaction_id"`
}
