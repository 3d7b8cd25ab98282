package subscription

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// CreatePending inserts a subscription awaiting payment settlement.
	CreatePending(ctx context.Context, creatorID, subscriberID int, planType string, price decimal.Decimal) (*Subscription, error)
	GetByID(ctx context.Context, id int) (*Subscription, error)
	// Cancel flips an active or pending subscription to cancelled and
	// stamps end_date; returns ErrAlreadyTerminated if it is already
	// cancelled or expired.
	Cancel(ctx context.Context, id int) (*Subscription, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error)
	ListByCreator(ctx context.Context, creatorID int) ([]Subscription, error)
	ListBySubscriber(ctx context.Context, subscriberID int) ([]Subscription, error)
}
