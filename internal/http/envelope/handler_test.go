package envelope

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

func serve(t *testing.T, h *Handler, owner uuid.UUID, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

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

func TestHandler_Create(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(l *MockLedger)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"libelle":"Salaire","montant":"250000","date":"2026-10-01","statut":"recue"}`,
			setupMock: func(l *MockLedger) {
				l.EXPECT().
					CreateEnvelope(gomock.Any(), owner, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, p ledger.CreateEnvelopeParams) (*envelope.Envelope, error) {
						assert.Equal(t, "Salaire", p.Label)
						assert.True(t, p.Amount.Equal(decimal.NewFromInt(250000)))
						assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), p.Date)

						return &envelope.Envelope{
							ID:               uuid.New(),
							Label:            p.Label,
							InitialAmount:    p.Amount,
							AvailableBalance: p.Amount,
							Status:           p.Status,
							Date:             p.Date,
						}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MalformedBody",
			body:       `{"libelle":`,
			setupMock:  func(*MockLedger) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "ValidationError",
			body: `{"libelle":"","montant":"10"}`,
			setupMock: func(l *MockLedger) {
				l.EXPECT().
					CreateEnvelope(gomock.Any(), owner, gomock.Any()).
					Return(nil, envelope.ErrEmptyLabel)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			l := NewMockLedger(ctrl)
			tt.setupMock(l)

			h := NewHandler(NewMockEnvelopes(ctrl), l)
			rec := serve(t, h, owner, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_CreateResponseShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	id := uuid.New()

	l := NewMockLedger(ctrl)
	l.EXPECT().
		CreateEnvelope(gomock.Any(), owner, gomock.Any()).
		Return(&envelope.Envelope{
			ID:               id,
			Label:            "Prime",
			InitialAmount:    decimal.RequireFromString("1000.50"),
			AvailableBalance: decimal.RequireFromString("1000.50"),
			Status:           envelope.StatusReceived,
			Date:             time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		}, nil)

	h := NewHandler(NewMockEnvelopes(ctrl), l)
	rec := serve(t, h, owner, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"libelle":"Prime","montant":"1000.50"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, id.String(), body["id"])
	assert.Equal(t, "2026-03-09", body["date"])
	assert.Equal(t, "1000.5", body["solde_disponible"])
}

func TestHandler_List(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name       string
		query      string
		setupMock  func(m *MockEnvelopes)
		wantStatus int
	}

	tests := []testCase{
		{
			name:  "FiltersPassedThrough",
			query: "?statut=recue&min_amount=100&start_date=2026-01-01&sort=montant&asc=true",
			setupMock: func(m *MockEnvelopes) {
				m.EXPECT().
					List(gomock.Any(), owner, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, f envelope.ListFilter) ([]*envelope.Envelope, error) {
						require.NotNil(t, f.Status)
						assert.Equal(t, envelope.StatusReceived, *f.Status)
						require.NotNil(t, f.MinAmount)
						assert.True(t, f.MinAmount.Equal(decimal.NewFromInt(100)))
						require.NotNil(t, f.StartDate)
						assert.Equal(t, envelope.SortField("montant"), f.SortBy)
						assert.True(t, f.Ascending)

						return []*envelope.Envelope{{ID: uuid.New()}}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "BadDate",
			query:      "?start_date=yesterday",
			setupMock:  func(*MockEnvelopes) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadAmount",
			query:      "?max_amount=lots",
			setupMock:  func(*MockEnvelopes) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockEnvelopes(ctrl)
			tt.setupMock(m)

			h := NewHandler(m, NewMockLedger(ctrl))
			rec := serve(t, h, owner, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	type testCase struct {
		name       string
		path       string
		setupMock  func(m *MockEnvelopes, l *MockLedger)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "SoftDeleteByDefault",
			path: "/" + id.String(),
			setupMock: func(m *MockEnvelopes, _ *MockLedger) {
				m.EXPECT().SoftDelete(gomock.Any(), owner, id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "Permanent",
			path: "/" + id.String() + "?permanent=true",
			setupMock: func(_ *MockEnvelopes, l *MockLedger) {
				l.EXPECT().DeleteEnvelope(gomock.Any(), owner, id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "PermanentWithTransfers",
			path: "/" + id.String() + "?permanent=true",
			setupMock: func(_ *MockEnvelopes, l *MockLedger) {
				l.EXPECT().DeleteEnvelope(gomock.Any(), owner, id).Return(envelope.ErrHasTransfers)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "NotFound",
			path: "/" + id.String(),
			setupMock: func(m *MockEnvelopes, _ *MockLedger) {
				m.EXPECT().SoftDelete(gomock.Any(), owner, id).Return(envelope.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "InvalidID",
			path:       "/not-a-uuid",
			setupMock:  func(*MockEnvelopes, *MockLedger) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockEnvelopes(ctrl)
			l := NewMockLedger(ctrl)
			tt.setupMock(m, l)

			h := NewHandler(m, l)
			rec := serve(t, h, owner, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	id := uuid.New()

	l := NewMockLedger(ctrl)
	l.EXPECT().Balance(gomock.Any(), owner, id).Return(&ledger.BalanceReport{
		Envelope: &envelope.Envelope{ID: id, AvailableBalance: decimal.NewFromInt(90)},
		Breakdown: ledger.Breakdown{
			Initial: decimal.NewFromInt(100),
			Spent:   decimal.NewFromInt(10),
		},
		Available: decimal.NewFromInt(90),
		InSync:    true,
	}, nil)

	h := NewHandler(NewMockEnvelopes(ctrl), l)
	rec := serve(t, h, owner, httptest.NewRequest(http.MethodGet, "/"+id.String()+"/balance", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "90", body["solde_disponible"])
	assert.Equal(t, "10", body["depenses"])
	assert.Equal(t, true, body["synchronise"])
}
