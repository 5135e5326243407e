package expense_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
)

var owner = uuid.MustParse("0b3f6a52-1a0e-4a8e-8f3b-2f9f4d1c7e10")

func rent() *expense.Expense {
	return &expense.Expense{
		ID:      uuid.New(),
		OwnerID: owner,
		Label:   "Rent",
		Amount:  decimal.NewFromInt(200000),
		Date:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_UpdateDetails(t *testing.T) {
	type testCase struct {
		name      string
		params    expense.UpdateParams
		setupMock func(m *expense.MockRepository, e *expense.Expense)
		wantErr   error
		verify    func(t *testing.T, e *expense.Expense)
	}

	tests := []testCase{
		{
			name:   "SetCategory",
			params: expense.UpdateParams{Category: new(" Logement ")},
			setupMock: func(m *expense.MockRepository, e *expense.Expense) {
				m.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)
				m.EXPECT().UpdateDetails(gomock.Any(), e).Return(nil)
			},
			verify: func(t *testing.T, e *expense.Expense) {
				require.NotNil(t, e.Category)
				assert.Equal(t, "Logement", *e.Category)
				assert.True(t, e.Amount.Equal(decimal.NewFromInt(200000)))
			},
		},
		{
			name:   "ClearCategory",
			params: expense.UpdateParams{Category: new("")},
			setupMock: func(m *expense.MockRepository, e *expense.Expense) {
				e.Category = new("Logement")
				m.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)
				m.EXPECT().UpdateDetails(gomock.Any(), e).Return(nil)
			},
			verify: func(t *testing.T, e *expense.Expense) {
				assert.Nil(t, e.Category)
			},
		},
		{
			name:   "EmptyLabel",
			params: expense.UpdateParams{Label: new(" ")},
			setupMock: func(m *expense.MockRepository, e *expense.Expense) {
				m.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)
			},
			wantErr: expense.ErrEmptyLabel,
		},
		{
			name:   "NotFound",
			params: expense.UpdateParams{},
			setupMock: func(m *expense.MockRepository, e *expense.Expense) {
				m.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(nil, expense.ErrNotFound)
			},
			wantErr: expense.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e := rent()
			repo := expense.NewMockRepository(ctrl)
			tt.setupMock(repo, e)

			got, err := expense.NewService(repo, expense.NewMockFileStore(ctrl)).
				UpdateDetails(context.Background(), owner, e.ID, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestService_AttachReceipt(t *testing.T) {
	t.Run("ReplacesPrevious", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		e := rent()
		e.AttachmentKey = new("old-key")

		repo := expense.NewMockRepository(ctrl)
		files := expense.NewMockFileStore(ctrl)

		repo.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)
		files.EXPECT().Upload(gomock.Any(), owner, "ticket.pdf", "application/pdf", gomock.Any()).Return("new-key", nil)
		repo.EXPECT().SetAttachment(gomock.Any(), owner, e.ID, gomock.Any()).Return(nil)
		files.EXPECT().Delete(gomock.Any(), "old-key").Return(nil)

		got, err := expense.NewService(repo, files).
			AttachReceipt(context.Background(), owner, e.ID, "ticket.pdf", "application/pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "new-key", *got.AttachmentKey)
	})

	t.Run("PersistFailureRemovesUpload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		e := rent()
		repo := expense.NewMockRepository(ctrl)
		files := expense.NewMockFileStore(ctrl)

		repo.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)
		files.EXPECT().Upload(gomock.Any(), owner, "ticket.png", "image/png", gomock.Any()).Return("new-key", nil)
		repo.EXPECT().SetAttachment(gomock.Any(), owner, e.ID, gomock.Any()).Return(errors.New("db error"))
		files.EXPECT().Delete(gomock.Any(), "new-key").Return(nil)

		_, err := expense.NewService(repo, files).
			AttachReceipt(context.Background(), owner, e.ID, "ticket.png", "image/png", strings.NewReader("png"))
		assert.Error(t, err)
	})
}

func TestService_ReceiptURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := rent()
	repo := expense.NewMockRepository(ctrl)
	files := expense.NewMockFileStore(ctrl)
	svc := expense.NewService(repo, files)

	repo.EXPECT().GetExpense(gomock.Any(), owner, e.ID).Return(e, nil)

	_, err := svc.ReceiptURL(context.Background(), owner, e.ID)
	assert.ErrorIs(t, err, expense.ErrNoAttachment)

	withKey := rent()
	withKey.AttachmentKey = new("k")
	repo.EXPECT().GetExpense(gomock.Any(), owner, withKey.ID).Return(withKey, nil)
	files.EXPECT().URL(gomock.Any(), "k").Return("https://files.example/k?sig=1", nil)

	url, err := svc.ReceiptURL(context.Background(), owner, withKey.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "sig=1")
}
