package receipt_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
)

func TestService_Generate(t *testing.T) {
	owner := uuid.New()
	opID := uuid.New()

	type testCase struct {
		name      string
		params    receipt.GenerateParams
		setupMock func(m *receipt.MockRepository)
		wantErr   error
	}

	valid := receipt.GenerateParams{
		OperationID: opID,
		Tenant:      " Awa Diop ",
		Unit:        "Appartement B2",
		Period:      "octobre 2026",
		Amount:      decimal.NewFromInt(150000),
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *receipt.Receipt) error {
						assert.Equal(t, "Awa Diop", r.Tenant)
						assert.Equal(t, opID, r.OperationID)
						assert.Equal(t, owner, r.OwnerID)
						r.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:      "MissingTenant",
			params:    receipt.GenerateParams{Period: "octobre 2026", Amount: decimal.NewFromInt(1)},
			setupMock: func(*receipt.MockRepository) {},
			wantErr:   receipt.ErrMissingTenant,
		},
		{
			name:      "MissingPeriod",
			params:    receipt.GenerateParams{Tenant: "Awa", Amount: decimal.NewFromInt(1)},
			setupMock: func(*receipt.MockRepository) {},
			wantErr:   receipt.ErrMissingPeriod,
		},
		{
			name:      "ZeroAmount",
			params:    receipt.GenerateParams{Tenant: "Awa", Period: "octobre 2026"},
			setupMock: func(*receipt.MockRepository) {},
			wantErr:   receipt.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := receipt.NewService(repo).Generate(context.Background(), owner, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}
