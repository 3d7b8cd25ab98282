package payment

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartItem mirrors the provider's product_cart entry.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Interval  string          `json:"interval,omitempty"`
}

type Customer struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Correlation is echoed back in webhook events and maps them onto the
// local transaction that initiated the checkout or payout.
type Correlation struct {
	AccountID       int    `json:"accountId"`
	TransactionKind string `json:"transactionKind"`
	RelatedEntityID int    `json:"relatedEntityId"`
}

type CheckoutSessionRequest struct {
	Cart      []CartItem
	Customer  Customer
	Metadata  Correlation
	ReturnURL string
	CancelURL string
}

type CheckoutSession struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

type PayoutRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Destination json.RawMessage
	AccountID   int
}

type Payout struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Provider is the payment-provider client surface the core depends on.
// The real HTTP client and the test double both implement it.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	CreatePayout(ctx context.Context, req PayoutRequest) (*Payout, error)
}
