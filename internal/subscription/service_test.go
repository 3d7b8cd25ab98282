package subscription

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Yuvraj13742/dodo-payments/internal/payment"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

// Mock repositories
type MockSubRepo struct{ mock.Mock }
type MockUserRepo struct{ mock.Mock }
type MockWalletRepo struct{ mock.Mock }
type MockProvider struct{ mock.Mock }

func (m *MockSubRepo) CreatePending(ctx context.Context, creatorID, subscriberID int, planType string, price decimal.Decimal) (*Subscription, error) {
	args := m.Called(ctx, creatorID, subscriberID, planType, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubRepo) GetByID(ctx context.Context, id int) (*Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubRepo) Cancel(ctx context.Context, id int) (*Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubRepo) Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubRepo) ListByCreator(ctx context.Context, creatorID int) ([]Subscription, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Subscription), args.Error(1)
}

func (m *MockSubRepo) ListBySubscriber(ctx context.Context, subscriberID int) ([]Subscription, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Subscription), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, username, email, passwordHash, role string) (*user.User, error) {
	args := m.Called(ctx, username, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) ListByRole(ctx context.Context, role string) ([]user.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepo) UpdateKYC(ctx context.Context, id int, kycStatus string, bankDetails json.RawMessage) (*user.User, error) {
	args := m.Called(ctx, id, kycStatus, bankDetails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockWalletRepo) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepo) Credit(ctx context.Context, userID int, amount decimal.Decimal, e wallet.Entry) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, amount, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) Debit(ctx context.Context, userID int, amount decimal.Decimal, e wallet.Entry) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, amount, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) DebitPending(ctx context.Context, userID int, amount decimal.Decimal, e wallet.Entry) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, amount, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) Transfer(ctx context.Context, fromID, toID int, amount, feeRate decimal.Decimal, debit, credit wallet.Entry) (*wallet.Transaction, *wallet.Transaction, error) {
	args := m.Called(ctx, fromID, toID, amount, feeRate, debit, credit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*wallet.Transaction), args.Get(1).(*wallet.Transaction), args.Error(2)
}

func (m *MockWalletRepo) CreatePending(ctx context.Context, userID int, txType string, amount decimal.Decimal, currency, externalRef, description string) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, txType, amount, currency, externalRef, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) GetByID(ctx context.Context, id int) (*wallet.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) GetByExternalRef(ctx context.Context, externalRef string) (*wallet.Transaction, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) ListByUser(ctx context.Context, userID, limit, offset int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func (m *MockWalletRepo) SumCompleted(ctx context.Context, userID int, types []string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, types)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProvider) CreateCheckoutSession(ctx context.Context, req payment.CheckoutSessionRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockProvider) CreatePayout(ctx context.Context, req payment.PayoutRequest) (*payment.Payout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payout), args.Error(1)
}

func newTestService() (Service, *MockSubRepo, *MockUserRepo, *MockWalletRepo, *MockProvider) {
	subs := new(MockSubRepo)
	users := new(MockUserRepo)
	wallets := new(MockWalletRepo)
	provider := new(MockProvider)
	return NewService(subs, users, wallets, provider), subs, users, wallets, provider
}

func TestCreate_OpensCheckoutAndRecordsPendingState(t *testing.T) {
	svc, subs, users, wallets, provider := newTestService()

	users.On("FindByID", mock.Anything, 5).Return(&user.User{ID: 5, Username: "maya", Role: "creator"}, nil)
	users.On("FindByID", mock.Anything, 3).Return(&user.User{ID: 3, Username: "sam", Email: "sam@example.com", Role: "user"}, nil)
	subs.On("CreatePending", mock.Anything, 5, 3, PlanMonthly, decimal.NewFromInt(299)).
		Return(&Subscription{ID: 9, CreatorID: 5, SubscriberID: 3, PlanType: PlanMonthly, Status: StatusPending}, nil)
	provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req payment.CheckoutSessionRequest) bool {
		return req.Metadata.AccountID == 3 &&
			req.Metadata.TransactionKind == wallet.TypeSubscription &&
			req.Metadata.RelatedEntityID == 9 &&
			req.Cart[0].Interval == "month"
	})).Return(&payment.CheckoutSession{ID: "cs_sub", CheckoutURL: "https://pay.example/cs_sub"}, nil)
	// Subscription money is INR and never enters the coin wallet.
	wallets.On("CreatePending", mock.Anything, 3, wallet.TypeSubscription,
		decimal.NewFromInt(299), wallet.CurrencyINR, "cs_sub", mock.AnythingOfType("string")).
		Return(&wallet.Transaction{ID: 51, Status: wallet.StatusPending}, nil)

	result, err := svc.Create(context.Background(), 3, CreateRequest{
		CreatorID: 5,
		PlanType:  PlanMonthly,
		Price:     decimal.NewFromInt(299),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, result.SubscriptionID)
	assert.Equal(t, 51, result.TransactionID)
	assert.Equal(t, "https://pay.example/cs_sub", result.CheckoutURL)
	wallets.AssertExpectations(t)
}

func TestCreate_RejectsNonPositivePrice(t *testing.T) {
	svc, subs, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 3, CreateRequest{
		CreatorID: 5,
		PlanType:  PlanMonthly,
		Price:     decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	subs.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_TargetMustBeCreator(t *testing.T) {
	svc, subs, users, _, _ := newTestService()

	users.On("FindByID", mock.Anything, 5).Return(&user.User{ID: 5, Role: "user"}, nil)

	_, err := svc.Create(context.Background(), 3, CreateRequest{
		CreatorID: 5,
		PlanType:  PlanMonthly,
		Price:     decimal.NewFromInt(299),
	})
	assert.ErrorIs(t, err, ErrCreatorNotFound)
	subs.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_YearlyPlanUsesYearInterval(t *testing.T) {
	svc, subs, users, wallets, provider := newTestService()

	users.On("FindByID", mock.Anything, 5).Return(&user.User{ID: 5, Username: "maya", Role: "creator"}, nil)
	users.On("FindByID", mock.Anything, 3).Return(&user.User{ID: 3, Username: "sam", Role: "user"}, nil)
	subs.On("CreatePending", mock.Anything, 5, 3, PlanYearly, decimal.NewFromInt(2999)).
		Return(&Subscription{ID: 10, PlanType: PlanYearly, Status: StatusPending}, nil)
	provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req payment.CheckoutSessionRequest) bool {
		return req.Cart[0].Interval == "year"
	})).Return(&payment.CheckoutSession{ID: "cs_y", CheckoutURL: "u"}, nil)
	wallets.On("CreatePending", mock.Anything, 3, wallet.TypeSubscription,
		decimal.NewFromInt(2999), wallet.CurrencyINR, "cs_y", mock.AnythingOfType("string")).
		Return(&wallet.Transaction{ID: 52}, nil)

	_, err := svc.Create(context.Background(), 3, CreateRequest{
		CreatorID: 5,
		PlanType:  PlanYearly,
		Price:     decimal.NewFromInt(2999),
	})
	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestCancel_PassesThroughTerminatedError(t *testing.T) {
	svc, subs, _, _, _ := newTestService()

	subs.On("Cancel", mock.Anything, 9).Return(nil, ErrAlreadyTerminated)

	_, err := svc.Cancel(context.Background(), 9)
	assert.ErrorIs(t, err, ErrAlreadyTerminated)
}

func TestPeriodEnd(t *testing.T) {
	activated := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), PeriodEnd(PlanMonthly, activated))
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), PeriodEnd(PlanYearly, activated))
	// Pay-per-view grants no recurring window.
	assert.Equal(t, activated, PeriodEnd(PlanPayPerView, activated))
}
