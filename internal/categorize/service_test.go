package categorize_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
)

func TestService_Suggest(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name      string
		label     string
		setupMock func(m *categorize.MockRepository)
		want      string
		wantOK    bool
	}

	tests := []testCase{
		{
			name:  "Match",
			label: "CB AUCHAN DAKAR",
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), owner, "CB AUCHAN DAKAR").Return("Alimentation", nil)
			},
			want:   "Alimentation",
			wantOK: true,
		},
		{
			name:  "NoMatch",
			label: "VIR SEPA",
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), owner, "VIR SEPA").Return("", nil)
			},
		},
		{
			name:      "BlankLabel",
			label:     "   ",
			setupMock: func(*categorize.MockRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, ok, err := categorize.NewService(repo).Suggest(context.Background(), owner, tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	assert.ErrorIs(t, svc.Learn(context.Background(), owner, " ", "x"), categorize.ErrEmptyPattern)
	assert.ErrorIs(t, svc.Learn(context.Background(), owner, "auchan", ""), categorize.ErrEmptyCategory)

	repo.EXPECT().CreateRule(gomock.Any(), owner, "auchan", "Alimentation").Return(nil)
	assert.NoError(t, svc.Learn(context.Background(), owner, " auchan ", "Alimentation"))
}
