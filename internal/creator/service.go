package creator

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/alerts"
	"github.com/Yuvraj13742/dodo-payments/internal/auth"
	"github.com/Yuvraj13742/dodo-payments/internal/logger"
	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
	"github.com/Yuvraj13742/dodo-payments/internal/payment"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

var (
	ErrNotACreator        = errors.New("account is not a creator account")
	ErrBelowMinimumPayout = errors.New("amount is below the minimum payout")
	ErrCreatorNotFound    = errors.New("creator not found")
)

type Service struct {
	users          user.Repository
	wallets        wallet.Repository
	provider       payment.Provider
	alerts         alerts.Queue
	minPayout      decimal.Decimal
	commissionRate decimal.Decimal
}

func NewService(users user.Repository, wallets wallet.Repository, provider payment.Provider, alertQueue alerts.Queue, minPayout, commissionRate decimal.Decimal) *Service {
	return &Service{
		users:          users,
		wallets:        wallets,
		provider:       provider,
		alerts:         alertQueue,
		minPayout:      minPayout,
		commissionRate: commissionRate,
	}
}

// RequestPayout runs the withdrawal workflow: precondition checks in a
// fixed order (role, minimum, funds), then the provider payout, then
// the local debit. The provider call comes first so we never debit for
// a payout the provider refused; the reverse gap (provider accepted,
// local debit failed) is raised as a reconciliation alert.
func (s *Service) RequestPayout(ctx context.Context, userID int, req WithdrawRequest) (*WithdrawResult, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	if u.Role != auth.RoleCreator {
		return nil, ErrNotACreator
	}
	if req.Amount.LessThan(s.minPayout) {
		return nil, ErrBelowMinimumPayout
	}

	balance, err := s.wallets.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, wallet.ErrInsufficientFunds
	}

	// Commission is withheld from the remitted amount; the full gross
	// amount leaves the wallet.
	net := req.Amount.Mul(decimal.NewFromInt(1).Sub(s.commissionRate))

	payout, err := s.provider.CreatePayout(ctx, payment.PayoutRequest{
		Amount:      net,
		Currency:    wallet.CurrencyINR,
		Destination: req.BankDetails,
		AccountID:   userID,
	})
	if err != nil {
		return nil, err
	}

	txn, err := s.wallets.DebitPending(ctx, userID, req.Amount, wallet.Entry{
		Type:        wallet.TypePayout,
		Description: fmt.Sprintf("Payout of %s (net %s after commission)", req.Amount, net),
		ExternalRef: &payout.ID,
	})
	if err != nil {
		// The provider already holds the payout; without a local row the
		// ledger and provider disagree until someone reconciles.
		s.alerts.Raise(ctx, alerts.KindPayoutGap,
			fmt.Sprintf("payout %s created at provider but local debit failed: %v", payout.ID, err),
			payout.ID, userID)
		return nil, err
	}

	metrics.RecordPayoutRequested()
	logger.Info("payout requested",
		"user_id", userID,
		"transaction_id", txn.ID,
		"payout_id", payout.ID,
		"gross", req.Amount,
		"net", net,
	)

	return &WithdrawResult{
		PayoutID:        payout.ID,
		TransactionID:   txn.ID,
		ProcessedAmount: net,
	}, nil
}

// Earnings builds the creator dashboard summary from the ledger.
// Payout rows carry negative amounts, so the payout total is reported
// as its absolute value.
func (s *Service) Earnings(ctx context.Context, userID int) (*wallet.EarningsSummary, error) {
	balance, err := s.wallets.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.wallets.SumCompleted(ctx, userID, []string{wallet.TypeGiftReceive, wallet.TypeSubscription})
	if err != nil {
		return nil, err
	}

	paidOut, err := s.wallets.SumCompleted(ctx, userID, []string{wallet.TypePayout})
	if err != nil {
		return nil, err
	}

	return &wallet.EarningsSummary{
		WalletBalance:      balance,
		TotalEarnings:      earned,
		TotalPayouts:       paidOut.Abs(),
		AvailableForPayout: balance,
	}, nil
}

func (s *Service) UpdateKYC(ctx context.Context, userID int, req KYCRequest) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	if u.Role != auth.RoleCreator {
		return nil, ErrNotACreator
	}

	updated, err := s.users.UpdateKYC(ctx, userID, req.KYCStatus, req.BankDetails)
	if err != nil {
		return nil, err
	}

	logger.Info("creator kyc updated", "user_id", userID, "kyc_status", req.KYCStatus)
	return updated, nil
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.users.ListByRole(ctx, auth.RoleCreator)
}
