package gift

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

var (
	ErrSenderNotFound   = errors.New("sender not found")
	ErrReceiverNotFound = errors.New("receiver not found")
)

type Service interface {
	SendGift(ctx context.Context, senderID int, req SendRequest) (*SendResult, error)
	ListGifts(ctx context.Context) ([]Gift, error)
}

type service struct {
	gifts          Repository
	users          user.Repository
	wallets        wallet.Repository
	commissionRate decimal.Decimal
}

func NewService(gifts Repository, users user.Repository, wallets wallet.Repository, commissionRate decimal.Decimal) Service {
	return &service{
		gifts:          gifts,
		users:          users,
		wallets:        wallets,
		commissionRate: commissionRate,
	}
}

// SendGift moves coins from sender to receiver synchronously. There is
// no external settlement step: both ledger rows are written completed,
// in the same atomic unit as both balance updates.
func (s *service) SendGift(ctx context.Context, senderID int, req SendRequest) (*SendResult, error) {
	g, err := s.gifts.GetByID(ctx, req.GiftID)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrSenderNotFound
		}
		return nil, err
	}

	receiver, err := s.users.FindByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	debitTx, creditTx, err := s.wallets.Transfer(
		ctx, sender.ID, receiver.ID, g.CoinCost, s.commissionRate,
		wallet.Entry{
			Type:        wallet.TypeGiftSend,
			Description: fmt.Sprintf("Sent %s to %s", g.Name, receiver.Username),
		},
		wallet.Entry{
			Type:        wallet.TypeGiftReceive,
			Description: fmt.Sprintf("Received %s from %s", g.Name, sender.Username),
		},
	)
	if err != nil {
		return nil, err
	}

	metrics.RecordGiftSent(g.Name)

	balance, err := s.wallets.Balance(ctx, sender.ID)
	if err != nil {
		return nil, err
	}

	return &SendResult{
		Gift:          g,
		SenderBalance: balance,
		DebitTxID:     debitTx.ID,
		CreditTxID:    creditTx.ID,
	}, nil
}

func (s *service) ListGifts(ctx context.Context) ([]Gift, error) {
	return s.gifts.List(ctx)
}
