package account_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
)

var (
	owner     = uuid.MustParse("6f2d7a3e-8c1b-4f0e-9a2d-3b5c7e9f1a20")
	fastRetry = saga.RetryPolicy{MaxAttempts: 3, Base: time.Millisecond}
	rentRe    = regexp.MustCompile(`(?i)loyer`)
)

type amountMatcher struct{ want decimal.Decimal }

func (m amountMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m amountMatcher) String() string { return "equals " + m.want.String() }

func amountOf(v int64) gomock.Matcher { return amountMatcher{want: decimal.NewFromInt(v)} }

func acct(name string, balance int64) *account.Account {
	return &account.Account{
		ID:      uuid.New(),
		OwnerID: owner,
		Name:    name,
		Balance: decimal.NewFromInt(balance),
		Active:  true,
		Version: 1,
	}
}

func newService(ctrl *gomock.Controller) (*account.Service, *account.MockRepository, *account.MockReceiptIssuer) {
	repo := account.NewMockRepository(ctrl)
	receipts := account.NewMockReceiptIssuer(ctrl)

	return account.NewService(repo, receipts, rentRe, fastRetry), repo, receipts
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)

	_, err := svc.Create(context.Background(), owner, account.CreateParams{Name: "  "})
	assert.ErrorIs(t, err, account.ErrEmptyName)

	_, err = svc.Create(context.Background(), owner, account.CreateParams{Name: "Wave", InitialBalance: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, account.ErrInvalidAmount)

	repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)

	a, err := svc.Create(context.Background(), owner, account.CreateParams{Name: "Wave", InitialBalance: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(a.InitialBalance))
	assert.Equal(t, "XOF", a.Currency)
	assert.Equal(t, "courant", a.Type)
	assert.True(t, a.Active)
}

func TestService_Post(t *testing.T) {
	type testCase struct {
		name      string
		debit     bool
		amount    int64
		setupMock func(m *account.MockRepository, a *account.Account)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Credit",
			amount: 1000,
			setupMock: func(m *account.MockRepository, a *account.Account) {
				m.EXPECT().GetAccount(gomock.Any(), owner, a.ID).Return(a, nil)
				m.EXPECT().
					ApplyOperation(gomock.Any(), gomock.Any(), amountOf(6000), 1).
					Return(2, nil)
			},
		},
		{
			name:   "DebitAboveBalance",
			debit:  true,
			amount: 5001,
			setupMock: func(m *account.MockRepository, a *account.Account) {
				m.EXPECT().GetAccount(gomock.Any(), owner, a.ID).Return(a, nil)
			},
			wantErr: account.ErrInsufficientFunds,
		},
		{
			name:      "NonPositive",
			amount:    0,
			setupMock: func(*account.MockRepository, *account.Account) {},
			wantErr:   account.ErrInvalidAmount,
		},
		{
			name:   "Inactive",
			amount: 10,
			setupMock: func(m *account.MockRepository, a *account.Account) {
				a.Active = false
				m.EXPECT().GetAccount(gomock.Any(), owner, a.ID).Return(a, nil)
			},
			wantErr: account.ErrInactive,
		},
		{
			name:   "RetriesOnConflict",
			debit:  true,
			amount: 1000,
			setupMock: func(m *account.MockRepository, a *account.Account) {
				moved := *a
				moved.Version = 2
				moved.Balance = decimal.NewFromInt(4500)

				gomock.InOrder(
					m.EXPECT().GetAccount(gomock.Any(), owner, a.ID).Return(a, nil),
					m.EXPECT().
						ApplyOperation(gomock.Any(), gomock.Any(), amountOf(4000), 1).
						Return(0, account.ErrVersionConflict),
					m.EXPECT().GetAccount(gomock.Any(), owner, a.ID).Return(&moved, nil),
					m.EXPECT().
						ApplyOperation(gomock.Any(), gomock.Any(), amountOf(3500), 2).
						Return(3, nil),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo, _ := newService(ctrl)
			a := acct("Wave", 5000)
			tt.setupMock(repo, a)

			post := svc.Credit
			if tt.debit {
				post = svc.Debit
			}

			op, err := post(context.Background(), owner, a.ID, decimal.NewFromInt(tt.amount), "test", time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, op.Amount.Equal(decimal.NewFromInt(tt.amount)))
		})
	}
}

func TestService_Transfer_IssuesRentReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, receipts := newService(ctrl)
	src := acct("Courant", 300000)
	dst := acct("Loyer Sacré-Cœur", 0)
	creditID := uuid.New()

	repo.EXPECT().GetAccount(gomock.Any(), owner, dst.ID).Return(dst, nil).Times(2)
	repo.EXPECT().GetAccount(gomock.Any(), owner, src.ID).Return(src, nil)
	repo.EXPECT().
		ApplyOperation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op *account.Operation, _ decimal.Decimal, v int) (int, error) {
			if op.AccountID == dst.ID {
				op.ID = creditID
			}

			return v + 1, nil
		}).Times(2)
	receipts.EXPECT().
		Generate(gomock.Any(), owner, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p receipt.GenerateParams) (*receipt.Receipt, error) {
			assert.Equal(t, creditID, p.OperationID)
			assert.Equal(t, "octobre 2026", p.Period)

			return &receipt.Receipt{ID: uuid.New(), OperationID: p.OperationID}, nil
		})

	res, err := svc.Transfer(context.Background(), owner, account.TransferParams{
		SourceID: src.ID,
		DestID:   dst.ID,
		Amount:   decimal.NewFromInt(150000),
		Rent:     &account.RentDetails{Tenant: "Awa Diop", Period: "octobre 2026"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Receipt)
	assert.NoError(t, res.ReceiptError)
}

func TestService_Transfer_ReceiptFailureKeepsTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, receipts := newService(ctrl)
	src := acct("Courant", 300000)
	dst := acct("Loyer", 0)

	repo.EXPECT().GetAccount(gomock.Any(), owner, dst.ID).Return(dst, nil).Times(2)
	repo.EXPECT().GetAccount(gomock.Any(), owner, src.ID).Return(src, nil)
	repo.EXPECT().ApplyOperation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil).Times(2)
	receipts.EXPECT().Generate(gomock.Any(), owner, gomock.Any()).Return(nil, receipt.ErrMissingTenant)

	res, err := svc.Transfer(context.Background(), owner, account.TransferParams{
		SourceID: src.ID,
		DestID:   dst.ID,
		Amount:   decimal.NewFromInt(1000),
		Rent:     &account.RentDetails{Period: "octobre 2026"},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, res.ReceiptError, receipt.ErrMissingTenant)
	assert.NotNil(t, res.Credit)
}

func TestService_Transfer_CompensatesDebit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)
	src := acct("Courant", 300000)
	dst := acct("Épargne", 0)
	debitID := uuid.New()
	boom := errors.New("db down")

	repo.EXPECT().GetAccount(gomock.Any(), owner, dst.ID).Return(dst, nil).Times(2)
	repo.EXPECT().GetAccount(gomock.Any(), owner, src.ID).Return(src, nil)
	repo.EXPECT().
		ApplyOperation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op *account.Operation, _ decimal.Decimal, _ int) (int, error) {
			if op.AccountID == src.ID {
				op.ID = debitID
				return 2, nil
			}

			return 0, boom
		}).Times(2)
	repo.EXPECT().RevertOperation(gomock.Any(), owner, debitID).Return(nil)

	_, err := svc.Transfer(context.Background(), owner, account.TransferParams{
		SourceID: src.ID,
		DestID:   dst.ID,
		Amount:   decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, boom)
}

func TestService_Transfer_SameAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newService(ctrl)
	id := uuid.New()

	_, err := svc.Transfer(context.Background(), owner, account.TransferParams{
		SourceID: id, DestID: id, Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, account.ErrSameAccount)
}
