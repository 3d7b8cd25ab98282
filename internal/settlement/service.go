package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/alerts"
	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/coin"
	"github.com/Yuvraj13742/dodo-payments/internal/logger"
	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
	"github.com/Yuvraj13742/dodo-payments/internal/subscription"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

// Service drives the transaction lifecycle off provider notifications.
// It must stay idempotent under at-least-once delivery: the CAS inside
// Repository is the only thing allowed to flip a status, and every
// side effect rides in the same database transaction as its flip.
type Service interface {
	// HandleEvent reconciles one provider event. A nil return means the
	// event is acknowledged, including duplicates, unknown references
	// and unrecognized event types.
	HandleEvent(ctx context.Context, ev Event) error

	// Confirm is the advisory client-return path. It verifies the
	// external reference matches and applies the same transition as the
	// webhook would, minus catalog resolution (the pending row already
	// records its coin quantity). The webhook remains source of truth.
	Confirm(ctx context.Context, transactionID int, externalRef, status string) (*wallet.Transaction, error)
}

type service struct {
	repo          Repository
	wallets       wallet.Repository
	subs          subscription.Repository
	packages      coin.Repository
	alerts        alerts.Queue
	coinsPerRupee decimal.Decimal
}

func NewService(repo Repository, wallets wallet.Repository, subs subscription.Repository, packages coin.Repository, alertQueue alerts.Queue, coinsPerRupee decimal.Decimal) Service {
	return &service{
		repo:          repo,
		wallets:       wallets,
		subs:          subs,
		packages:      packages,
		alerts:        alertQueue,
		coinsPerRupee: coinsPerRupee,
	}
}

func (s *service) HandleEvent(ctx context.Context, ev Event) error {
	status := terminalStatus(ev.Type)
	if status == "" {
		logger.Info("ignoring unrecognized webhook event type", "type", ev.Type)
		metrics.RecordWebhookEvent(ev.Type, "ignored")
		return nil
	}

	txn, err := s.wallets.GetByExternalRef(ctx, ev.Data.ID)
	if err != nil {
		if errors.Is(err, wallet.ErrTransactionNotFound) {
			s.alerts.Raise(ctx, alerts.KindUnknownReference,
				fmt.Sprintf("webhook %s references unknown transaction", ev.Type),
				ev.Data.ID, ev.Data.Metadata.AccountID)
			metrics.RecordWebhookEvent(ev.Type, "unknown_reference")
			return nil
		}
		return apperr.Internal("failed to load transaction for event", err)
	}

	if txn.Status != wallet.StatusPending {
		logger.Info("duplicate webhook delivery acknowledged",
			"external_ref", ev.Data.ID, "status", txn.Status)
		metrics.RecordWebhookEvent(ev.Type, "duplicate")
		return nil
	}

	// A correlation claiming a different account than the local ledger
	// row is a provider-side inconsistency; never apply effects off it.
	if meta := ev.Data.Metadata; meta.AccountID != 0 && meta.AccountID != txn.UserID {
		s.alerts.Raise(ctx, alerts.KindSettlementSkew,
			fmt.Sprintf("event account %d does not match transaction owner %d", meta.AccountID, txn.UserID),
			ev.Data.ID, txn.UserID)
		metrics.RecordWebhookEvent(ev.Type, "correlation_mismatch")
		return nil
	}

	var applied bool
	switch {
	case status == wallet.StatusCompleted && txn.Type == wallet.TypeCoinPurchase:
		applied, err = s.completePurchase(ctx, txn, ev)
	case status == wallet.StatusCompleted && txn.Type == wallet.TypeSubscription:
		applied, err = s.completeSubscription(ctx, txn, ev)
	default:
		// Payout completion and every failure/cancellation are pure
		// status flips: purchases and subscriptions never touched the
		// wallet while pending, and the payout debit already happened
		// at request time.
		applied, err = s.repo.MarkTerminal(ctx, txn.ID, status)
		if err == nil && applied && txn.Type == wallet.TypePayout && status == wallet.StatusFailed {
			s.alerts.Raise(ctx, alerts.KindPayoutFailed,
				"provider reported payout failure after wallet was debited",
				ev.Data.ID, txn.UserID)
		}
	}
	if err != nil {
		return err
	}

	if !applied {
		metrics.RecordWebhookEvent(ev.Type, "duplicate")
		return nil
	}

	metrics.RecordWebhookEvent(ev.Type, "applied")
	metrics.RecordSettlement(txn.Type, status)
	logger.Info("settlement applied",
		"transaction_id", txn.ID, "kind", txn.Type, "status", status, "external_ref", ev.Data.ID)
	return nil
}

// completePurchase resolves the coin quantity from the catalog via the
// event's correlation id. The flat conversion rate is a legacy fallback
// for events with no usable correlation and is logged as degraded.
func (s *service) completePurchase(ctx context.Context, txn *wallet.Transaction, ev Event) (bool, error) {
	coins, err := s.resolveCoins(ctx, txn, ev)
	if err != nil {
		return false, err
	}
	return s.repo.CompleteAndCredit(ctx, txn.ID, txn.UserID, coins)
}

func (s *service) resolveCoins(ctx context.Context, txn *wallet.Transaction, ev Event) (decimal.Decimal, error) {
	if pkgID := ev.Data.Metadata.RelatedEntityID; pkgID > 0 {
		pkg, err := s.packages.GetByID(ctx, pkgID)
		if err == nil {
			if !pkg.Coins.Equal(txn.Amount) {
				s.alerts.Raise(ctx, alerts.KindSettlementSkew,
					fmt.Sprintf("catalog package %d grants %s coins but pending row recorded %s", pkg.ID, pkg.Coins, txn.Amount),
					ev.Data.ID, txn.UserID)
			}
			return pkg.Coins, nil
		}
		if !errors.Is(err, coin.ErrPackageNotFound) {
			return decimal.Zero, apperr.Internal("failed to resolve coin package", err)
		}
		logger.Warn("event correlation names a missing coin package",
			"package_id", pkgID, "external_ref", ev.Data.ID)
	}

	logger.Warn("crediting via flat conversion rate, no catalog correlation",
		"external_ref", ev.Data.ID, "amount", ev.Data.Amount, "rate", s.coinsPerRupee)
	return ev.Data.Amount.Mul(s.coinsPerRupee), nil
}

func (s *service) completeSubscription(ctx context.Context, txn *wallet.Transaction, ev Event) (bool, error) {
	subID := ev.Data.Metadata.RelatedEntityID
	if subID <= 0 {
		s.alerts.Raise(ctx, alerts.KindSettlementSkew,
			"subscription payment event carries no subscription correlation",
			ev.Data.ID, txn.UserID)
		return false, nil
	}

	sub, err := s.subs.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			s.alerts.Raise(ctx, alerts.KindSettlementSkew,
				fmt.Sprintf("subscription %d referenced by event does not exist", subID),
				ev.Data.ID, txn.UserID)
			return false, nil
		}
		return false, apperr.Internal("failed to load subscription", err)
	}

	now := time.Now()
	applied, activated, err := s.repo.CompleteAndActivate(ctx, txn.ID, sub.ID, subscription.PeriodEnd(sub.PlanType, now))
	if err != nil {
		return false, err
	}
	if applied && !activated {
		// Payment settled but the subscription had already left pending
		// (cancelled before the webhook landed). Money took; flag it.
		s.alerts.Raise(ctx, alerts.KindSettlementSkew,
			fmt.Sprintf("payment settled for subscription %d which is no longer pending", sub.ID),
			ev.Data.ID, txn.UserID)
	}
	return applied, nil
}

func (s *service) Confirm(ctx context.Context, transactionID int, externalRef, status string) (*wallet.Transaction, error) {
	if status != wallet.StatusCompleted && status != wallet.StatusFailed && status != wallet.StatusCancelled {
		return nil, apperr.Validation("status must be completed, failed or cancelled")
	}

	txn, err := s.wallets.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, wallet.ErrTransactionNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, apperr.Internal("failed to load transaction", err)
	}

	if txn.DodoTransactionID == nil || *txn.DodoTransactionID != externalRef {
		return nil, apperr.Validation("external transaction id mismatch")
	}

	if txn.Status != wallet.StatusPending {
		return nil, apperr.Conflict("transaction already processed or not pending")
	}

	var applied bool
	if status == wallet.StatusCompleted && txn.Type == wallet.TypeCoinPurchase {
		// The pending row records its coin quantity, so the advisory
		// path can credit without catalog access.
		applied, err = s.repo.CompleteAndCredit(ctx, txn.ID, txn.UserID, txn.Amount)
	} else {
		applied, err = s.repo.MarkTerminal(ctx, txn.ID, status)
	}
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperr.Conflict("transaction already processed or not pending")
	}

	metrics.RecordSettlement(txn.Type, status)

	return s.wallets.GetByID(ctx, transactionID)
}
