package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yuvraj13742/dodo-payments/internal/auth"
	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
	"github.com/Yuvraj13742/dodo-payments/internal/payment"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

var (
	ErrCreatorNotFound    = errors.New("creator not found or is not a creator")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrInvalidPrice       = errors.New("price must be positive")
)

type Service interface {
	// Create opens a provider checkout session and records both a
	// pending subscription and a pending ledger row referencing the
	// session. Activation happens only through settlement.
	Create(ctx context.Context, subscriberID int, req CreateRequest) (*CreateResult, error)
	Cancel(ctx context.Context, id int) (*Subscription, error)
	Get(ctx context.Context, id int) (*Subscription, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error)
	ListByCreator(ctx context.Context, creatorID int) ([]Subscription, error)
}

type service struct {
	subs     Repository
	users    user.Repository
	wallets  wallet.Repository
	provider payment.Provider
}

func NewService(subs Repository, users user.Repository, wallets wallet.Repository, provider payment.Provider) Service {
	return &service{
		subs:     subs,
		users:    users,
		wallets:  wallets,
		provider: provider,
	}
}

func (s *service) Create(ctx context.Context, subscriberID int, req CreateRequest) (*CreateResult, error) {
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	creator, err := s.users.FindByID(ctx, req.CreatorID)
	if err != nil || creator.Role != auth.RoleCreator {
		return nil, ErrCreatorNotFound
	}

	subscriber, err := s.users.FindByID(ctx, subscriberID)
	if err != nil {
		return nil, ErrSubscriberNotFound
	}

	sub, err := s.subs.CreatePending(ctx, creator.ID, subscriber.ID, req.PlanType, req.Price)
	if err != nil {
		return nil, err
	}

	interval := "month"
	if req.PlanType == PlanYearly {
		interval = "year"
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutSessionRequest{
		Cart: []payment.CartItem{{
			ProductID: fmt.Sprintf("subscription_plan_%s_%d", req.PlanType, creator.ID),
			Quantity:  1,
			Price:     req.Price,
			Interval:  interval,
		}},
		Customer: payment.Customer{ID: subscriber.ID, Email: subscriber.Email},
		Metadata: payment.Correlation{
			AccountID:       subscriber.ID,
			TransactionKind: wallet.TypeSubscription,
			RelatedEntityID: sub.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.wallets.CreatePending(
		ctx, subscriber.ID, wallet.TypeSubscription, req.Price, wallet.CurrencyINR,
		session.ID, fmt.Sprintf("%s subscription for %s", req.PlanType, creator.Username),
	)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckoutSession(wallet.TypeSubscription)

	return &CreateResult{
		CheckoutURL:    session.CheckoutURL,
		SubscriptionID: sub.ID,
		TransactionID:  tx.ID,
	}, nil
}

func (s *service) Cancel(ctx context.Context, id int) (*Subscription, error) {
	return s.subs.Cancel(ctx, id)
}

func (s *service) Get(ctx context.Context, id int) (*Subscription, error) {
	return s.subs.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error) {
	return s.subs.Update(ctx, id, req)
}

func (s *service) ListByCreator(ctx context.Context, creatorID int) ([]Subscription, error) {
	return s.subs.ListByCreator(ctx, creatorID)
}
