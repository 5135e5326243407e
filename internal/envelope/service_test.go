package envelope_test

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
)

var owner = uuid.MustParse("8c1b7c9e-3f59-4c0e-9d0b-5d0b8f6b1a01")

func salary() *envelope.Envelope {
	return &envelope.Envelope{
		ID:               uuid.New(),
		OwnerID:          owner,
		Label:            "Salary",
		InitialAmount:    decimal.NewFromInt(500000),
		AvailableBalance: decimal.NewFromInt(500000),
		Status:           envelope.StatusReceived,
		Date:             time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Version:          1,
	}
}

func TestService_List_DefaultsSort(t *testing.T) {
	type testCase struct {
		name   string
		filter envelope.ListFilter
		want   envelope.SortField
	}

	tests := []testCase{
		{name: "Empty", filter: envelope.ListFilter{}, want: envelope.SortCreated},
		{name: "Unknown", filter: envelope.ListFilter{SortBy: "libelle; DROP"}, want: envelope.SortCreated},
		{name: "Amount", filter: envelope.ListFilter{SortBy: envelope.SortAmount}, want: envelope.SortAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := envelope.NewMockRepository(ctrl)
			repo.EXPECT().
				ListEnvelopes(gomock.Any(), owner, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, f envelope.ListFilter) ([]*envelope.Envelope, error) {
					assert.Equal(t, tt.want, f.SortBy)
					return []*envelope.Envelope{salary()}, nil
				})

			got, err := envelope.NewService(repo).List(context.Background(), owner, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestService_Update(t *testing.T) {
	type args struct {
		params envelope.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *envelope.MockRepository, e *envelope.Envelope)
		wantErr   error
		verify    func(t *testing.T, e *envelope.Envelope)
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: envelope.UpdateParams{
				Label:  new("  Bonus  "),
				Status: new(envelope.StatusPlanned),
			}},
			setupMock: func(m *envelope.MockRepository, e *envelope.Envelope) {
				m.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(e, nil)
				m.EXPECT().UpdateDetails(gomock.Any(), e).Return(nil)
			},
			verify: func(t *testing.T, e *envelope.Envelope) {
				assert.Equal(t, "Bonus", e.Label)
				assert.Equal(t, envelope.StatusPlanned, e.Status)
				// Amounts are fixed at creation.
				assert.True(t, e.InitialAmount.Equal(decimal.NewFromInt(500000)))
			},
		},
		{
			name: "EmptyLabel",
			args: args{params: envelope.UpdateParams{Label: new("   ")}},
			setupMock: func(m *envelope.MockRepository, e *envelope.Envelope) {
				m.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(e, nil)
			},
			wantErr: envelope.ErrEmptyLabel,
		},
		{
			name: "InvalidStatus",
			args: args{params: envelope.UpdateParams{Status: new(envelope.Status("lost"))}},
			setupMock: func(m *envelope.MockRepository, e *envelope.Envelope) {
				m.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(e, nil)
			},
			wantErr: envelope.ErrInvalidStatus,
		},
		{
			name: "NotFound",
			args: args{params: envelope.UpdateParams{}},
			setupMock: func(m *envelope.MockRepository, e *envelope.Envelope) {
				m.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(nil, envelope.ErrNotFound)
			},
			wantErr: envelope.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e := salary()
			repo := envelope.NewMockRepository(ctrl)
			tt.setupMock(repo, e)

			got, err := envelope.NewService(repo).Update(context.Background(), owner, e.ID, tt.args.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestService_ValidateBank(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := salary()
	repo := envelope.NewMockRepository(ctrl)
	repo.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(e, nil)
	repo.EXPECT().
		SetBankValidated(gomock.Any(), e).
		DoAndReturn(func(_ context.Context, e *envelope.Envelope) error {
			now := time.Now()
			e.ValidatedAt = &now
			return nil
		})

	got, err := envelope.NewService(repo).ValidateBank(context.Background(), owner, e.ID, true)
	require.NoError(t, err)
	assert.True(t, got.BankValidated)
	assert.NotNil(t, got.ValidatedAt)
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := salary()
	repo := envelope.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().Restore(gomock.Any(), owner, e.ID).Return(nil),
		repo.EXPECT().GetEnvelope(gomock.Any(), owner, e.ID).Return(e, nil),
	)

	got, err := envelope.NewService(repo).Restore(context.Background(), owner, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestService_Restore_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := envelope.NewMockRepository(ctrl)
	repo.EXPECT().Restore(gomock.Any(), owner, gomock.Any()).Return(errors.New("db error"))

	got, err := envelope.NewService(repo).Restore(context.Background(), owner, uuid.New())
	assert.Error(t, err)
	assert.Nil(t, got)
}
