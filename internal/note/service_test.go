package note_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
)

var owner = uuid.MustParse("9e8d7c6b-5a49-4382-9170-6f5e4d3c2b1a")

func pending(kind note.Kind) *note.Note {
	return &note.Note{
		ID:          uuid.New(),
		OwnerID:     owner,
		Kind:        kind,
		Label:       "Prime",
		Amount:      decimal.NewFromInt(75000),
		PlannedDate: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		Status:      note.StatusPending,
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := note.NewMockRepository(ctrl)
	svc := note.NewService(repo, note.NewMockLedger(ctrl))

	_, err := svc.Create(context.Background(), owner, note.CreateParams{Kind: "autre", Label: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, note.ErrInvalidKind)

	_, err = svc.Create(context.Background(), owner, note.CreateParams{Kind: note.KindIncome, Label: "x"})
	assert.ErrorIs(t, err, note.ErrInvalidAmount)

	envID := uuid.New()

	repo.EXPECT().CreateNote(gomock.Any(), gomock.Any()).Return(nil)

	n, err := svc.Create(context.Background(), owner, note.CreateParams{
		Kind: note.KindIncome, Label: " Prime ", Amount: decimal.NewFromInt(1), EnvelopeID: &envID,
	})
	require.NoError(t, err)
	assert.Equal(t, note.StatusPending, n.Status)
	assert.Equal(t, "Prime", n.Label)
	assert.Nil(t, n.EnvelopeID)
}

func TestService_Convert(t *testing.T) {
	type testCase struct {
		name      string
		kind      note.Kind
		setupMock func(r *note.MockRepository, l *note.MockLedger, n *note.Note, target uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "IncomeBecomesEnvelope",
			kind: note.KindIncome,
			setupMock: func(r *note.MockRepository, l *note.MockLedger, n *note.Note, target uuid.UUID) {
				r.EXPECT().GetNote(gomock.Any(), owner, n.ID).Return(n, nil)
				r.EXPECT().UpdateStatus(gomock.Any(), owner, n.ID, note.StatusPending, note.StatusConverted).Return(nil)
				l.EXPECT().
					CreateEnvelope(gomock.Any(), owner, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, p ledger.CreateEnvelopeParams) (*envelope.Envelope, error) {
						assert.Equal(t, "Prime", p.Label)
						assert.Equal(t, n.PlannedDate, p.Date)

						return &envelope.Envelope{ID: target}, nil
					})
				r.EXPECT().SetConverted(gomock.Any(), owner, n.ID, target).Return(nil)
			},
		},
		{
			name: "ExpenseBecomesExpense",
			kind: note.KindExpense,
			setupMock: func(r *note.MockRepository, l *note.MockLedger, n *note.Note, target uuid.UUID) {
				r.EXPECT().GetNote(gomock.Any(), owner, n.ID).Return(n, nil)
				r.EXPECT().UpdateStatus(gomock.Any(), owner, n.ID, note.StatusPending, note.StatusConverted).Return(nil)
				l.EXPECT().
					RecordExpense(gomock.Any(), owner, gomock.Any()).
					Return(&ledger.ExpenseResult{Expense: &expense.Expense{ID: target}}, nil)
				r.EXPECT().SetConverted(gomock.Any(), owner, n.ID, target).Return(errors.New("db blip"))
			},
		},
		{
			name: "LedgerRejectsRevertsClaim",
			kind: note.KindExpense,
			setupMock: func(r *note.MockRepository, l *note.MockLedger, n *note.Note, _ uuid.UUID) {
				r.EXPECT().GetNote(gomock.Any(), owner, n.ID).Return(n, nil)
				r.EXPECT().UpdateStatus(gomock.Any(), owner, n.ID, note.StatusPending, note.StatusConverted).Return(nil)
				l.EXPECT().RecordExpense(gomock.Any(), owner, gomock.Any()).Return(nil, ledger.ErrInsufficientBalance)
				r.EXPECT().UpdateStatus(gomock.Any(), owner, n.ID, note.StatusConverted, note.StatusPending).Return(nil)
			},
			wantErr: ledger.ErrInsufficientBalance,
		},
		{
			name: "AlreadyCancelled",
			kind: note.KindIncome,
			setupMock: func(r *note.MockRepository, _ *note.MockLedger, n *note.Note, _ uuid.UUID) {
				n.Status = note.StatusCancelled
				r.EXPECT().GetNote(gomock.Any(), owner, n.ID).Return(n, nil)
			},
			wantErr: note.ErrNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := note.NewMockRepository(ctrl)
			l := note.NewMockLedger(ctrl)
			n := pending(tt.kind)
			target := uuid.New()
			tt.setupMock(repo, l, n, target)

			got, err := note.NewService(repo, l).Convert(context.Background(), owner, n.ID, time.Time{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, note.StatusConverted, got.Status)
			assert.Equal(t, target, *got.ConvertedID)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := note.NewMockRepository(ctrl)
	n := pending(note.KindExpense)

	repo.EXPECT().GetNote(gomock.Any(), owner, n.ID).Return(n, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), owner, n.ID, note.StatusPending, note.StatusCancelled).Return(nil)

	got, err := note.NewService(repo, note.NewMockLedger(ctrl)).Cancel(context.Background(), owner, n.ID)
	require.NoError(t, err)
	assert.Equal(t, note.StatusCancelled, got.Status)
}
