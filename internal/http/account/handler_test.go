package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
)

func serve(h *Handler, owner uuid.UUID, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithOwner(req.Context(), owner)))
		})
	})
	h.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Transfer(t *testing.T) {
	owner := uuid.New()
	src := uuid.New()
	dst := uuid.New()

	body := func(extra string) string {
		return `{"compte_source_id":"` + src.String() + `","compte_destination_id":"` + dst.String() + `","montant":"150000"` + extra + `}`
	}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *MockAccounts)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "WithRentReceipt",
			body: body(`,"loyer":{"locataire":"Awa Diop","logement":"B2","periode":"octobre 2026"}`),
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Transfer(gomock.Any(), owner, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, p account.TransferParams) (*account.TransferResult, error) {
						require.NotNil(t, p.Rent)
						assert.Equal(t, "Awa Diop", p.Rent.Tenant)
						assert.True(t, p.Amount.Equal(decimal.NewFromInt(150000)))

						return &account.TransferResult{
							Debit:   &account.Operation{ID: uuid.New(), AccountID: src, Kind: account.Debit},
							Credit:  &account.Operation{ID: uuid.New(), AccountID: dst, Kind: account.Credit},
							Receipt: &receipt.Receipt{ID: uuid.New()},
						}, nil
					})
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.NotEmpty(t, body["quittance_id"])
				assert.Nil(t, body["erreur_quittance"])
			},
		},
		{
			name: "ReceiptFailureStillCreated",
			body: body(`,"loyer":{"locataire":"","periode":"octobre 2026"}`),
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Transfer(gomock.Any(), owner, gomock.Any()).
					Return(&account.TransferResult{
						Debit:        &account.Operation{ID: uuid.New()},
						Credit:       &account.Operation{ID: uuid.New()},
						ReceiptError: receipt.ErrMissingTenant,
					}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Nil(t, body["quittance_id"])
				assert.Equal(t, receipt.ErrMissingTenant.Error(), body["erreur_quittance"])
			},
		},
		{
			name: "InsufficientFunds",
			body: body(""),
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Transfer(gomock.Any(), owner, gomock.Any()).
					Return(nil, account.ErrInsufficientFunds)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "WrappedSagaError",
			body: body(""),
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Transfer(gomock.Any(), owner, gomock.Any()).
					Return(nil, errors.Join(errors.New("transferring between accounts"), account.ErrInactive))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockAccounts(ctrl)
			tt.setupMock(m)

			rec := serve(NewHandler(m), owner, httptest.NewRequest(http.MethodPost, "/transfer", strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}

func TestHandler_CreditDebit(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	type testCase struct {
		name       string
		path       string
		setupMock  func(m *MockAccounts)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Credit",
			path: "/credit",
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Credit(gomock.Any(), owner, id, gomock.Any(), "Salaire", gomock.Any()).
					Return(&account.Operation{ID: uuid.New(), AccountID: id, Kind: account.Credit}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "DebitOverdrawn",
			path: "/debit",
			setupMock: func(m *MockAccounts) {
				m.EXPECT().
					Debit(gomock.Any(), owner, id, gomock.Any(), "Salaire", gomock.Any()).
					Return(nil, account.ErrInsufficientFunds)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockAccounts(ctrl)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPost, "/"+id.String()+tt.path,
				strings.NewReader(`{"montant":"1000","description":"Salaire","date":"2026-10-01"}`))
			rec := serve(NewHandler(m), owner, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()

	m := NewMockAccounts(ctrl)
	m.EXPECT().List(gomock.Any(), owner, true).Return([]*account.Account{
		{ID: uuid.New(), Name: "Compte courant", Balance: decimal.NewFromInt(42), Currency: "XOF", Active: true},
	}, nil)

	rec := serve(NewHandler(m), owner, httptest.NewRequest(http.MethodGet, "/?actif=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Compte courant", body[0]["nom"])
	assert.Equal(t, "42", body[0]["solde_actuel"])
}
