package coin

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
	"github.com/Yuvraj13742/dodo-payments/internal/payment"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	// Purchase creates a provider checkout session and a pending
	// coin_purchase ledger row carrying the session id. Coins are only
	// credited when settlement confirms the payment.
	Purchase(ctx context.Context, userID int, req PurchaseRequest) (*PurchaseResult, error)
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)
	ListPackages(ctx context.Context) ([]CoinPackage, error)
}

type service struct {
	packages Repository
	users    user.Repository
	wallets  wallet.Repository
	provider payment.Provider
}

func NewService(packages Repository, users user.Repository, wallets wallet.Repository, provider payment.Provider) Service {
	return &service{
		packages: packages,
		users:    users,
		wallets:  wallets,
		provider: provider,
	}
}

func (s *service) Purchase(ctx context.Context, userID int, req PurchaseRequest) (*PurchaseResult, error) {
	pkg, err := s.packages.GetByID(ctx, req.CoinPackageID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutSessionRequest{
		Cart: []payment.CartItem{{
			ProductID: fmt.Sprintf("coin_package_%d", pkg.ID),
			Quantity:  1,
			Price:     pkg.Price,
		}},
		Customer: payment.Customer{ID: u.ID, Email: u.Email},
		Metadata: payment.Correlation{
			AccountID:       u.ID,
			TransactionKind: wallet.TypeCoinPurchase,
			RelatedEntityID: pkg.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	// The pending row records the coin quantity, not the money price,
	// so the completed ledger replays to the balance exactly.
	tx, err := s.wallets.CreatePending(
		ctx, u.ID, wallet.TypeCoinPurchase, pkg.Coins, wallet.CurrencyCoins,
		session.ID, fmt.Sprintf("Purchase of %s coins (%s)", pkg.Coins, pkg.Name),
	)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckoutSession(wallet.TypeCoinPurchase)

	return &PurchaseResult{
		CheckoutURL:   session.CheckoutURL,
		TransactionID: tx.ID,
	}, nil
}

func (s *service) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	balance, err := s.wallets.Balance(ctx, userID)
	if errors.Is(err, wallet.ErrAccountNotFound) {
		return decimal.Zero, ErrUserNotFound
	}
	return balance, err
}

func (s *service) ListPackages(ctx context.Context) ([]CoinPackage, error) {
	return s.packages.List(ctx)
}
