package subscription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadyTerminated    = errors.New("subscription is already cancelled or expired")
)

const subscriptionColumns = `id, creator_id, subscriber_id, plan_type, price, status, start_date, end_date, auto_renew, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePending(ctx context.Context, creatorID, subscriberID int, planType string, price decimal.Decimal) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO subscriptions (creator_id, subscriber_id, plan_type, price, status, start_date, auto_renew)
		VALUES ($1, $2, $3, $4, 'pending', NOW(), TRUE)
		RETURNING `+subscriptionColumns,
		creatorID, subscriberID, planType, price,
	).StructScan(sub)
	return sub, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.GetContext(ctx, sub,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	return sub, err
}

func (r *repository) Cancel(ctx context.Context, id int) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE subscriptions
		SET status = 'cancelled', end_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'active')
		RETURNING `+subscriptionColumns,
		id,
	).StructScan(sub)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish missing from already-terminated.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyTerminated
	}
	return sub, err
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE subscriptions
		SET plan_type  = COALESCE($1, plan_type),
		    price      = COALESCE($2, price),
		    auto_renew = COALESCE($3, auto_renew),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING `+subscriptionColumns,
		req.PlanType, req.Price, req.AutoRenew, id,
	).StructScan(sub)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	return sub, err
}

func (r *repository) ListByCreator(ctx context.Context, creatorID int) ([]Subscription, error) {
	subs := []Subscription{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE creator_id = $1 ORDER BY created_at DESC`,
		creatorID)
	return subs, err
}

func (r *repository) ListBySubscriber(ctx context.Context, subscriberID int) ([]Subscription, error) {
	subs := []Subscription{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE subscriber_id = $1 ORDER BY created_at DESC`,
		subscriberID)
	return subs, err
}
