package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PlanMonthly    = "monthly"
	PlanYearly     = "yearly"
	PlanPayPerView = "pay-per-view"

	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Subscription links a subscriber to a creator. It is created pending
// at checkout and only promoted to active by settlement; end_date is
// written exactly once, at activation or cancellation.
type Subscription struct {
	ID           int             `db:"id" json:"id"`
	CreatorID    int             `db:"creator_id" json:"creator_id"`
	SubscriberID int             `db:"subscriber_id" json:"subscriber_id"`
	PlanType     string          `db:"plan_type" json:"plan_type"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Status       string          `db:"status" json:"status"`
	StartDate    time.Time       `db:"start_date" json:"start_date"`
	EndDate      *time.Time      `db:"end_date" json:"end_date,omitempty"`
	AutoRenew    bool            `db:"auto_renew" json:"auto_renew"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// PeriodEnd returns the subscription window end for a plan activated at
// the given instant. Pay-per-view grants no recurring window.
func PeriodEnd(planType string, activatedAt time.Time) time.Time {
	switch planType {
	case PlanYearly:
		return activatedAt.AddDate(1, 0, 0)
	case PlanMonthly:
		return activatedAt.AddDate(0, 1, 0)
	default:
		return activatedAt
	}
}

type CreateRequest struct {
	CreatorID int             `json:"creator_id" binding:"required"`
	PlanType  string          `json:"plan_type" binding:"required,oneof=monthly yearly pay-per-view"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

type CreateResult struct {
	CheckoutURL    string `json:"checkout_url"`
	SubscriptionID int    `json:"subscription_id"`
	TransactionID  int    `json:"transaction_id"`
}

type UpdateRequest struct {
	PlanType  *string          `json:"plan_type" binding:"omitempty,oneof=monthly yearly pay-per-view"`
	Price     *decimal.Decimal `json:"price"`
	AutoRenew *bool            `json:"auto_renew"`
}
