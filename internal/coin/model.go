package coin

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinPackage is immutable catalog data: a purchasable bundle of coins
// at a fixed money price.
type CoinPackage struct {
	ID        int             `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Coins     decimal.Decimal `db:"coins" json:"coins"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type PurchaseRequest struct {
	CoinPackageID int `json:"coin_package_id" binding:"required"`
}

type PurchaseResult struct {
	CheckoutURL   string `json:"checkout_url"`
	TransactionID int    `json:"transaction_id"`
}

type BalanceResponse struct {
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}
