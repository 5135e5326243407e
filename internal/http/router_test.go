package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	cagnottehttp "github.com/MrJamesThe3rd/cagnotte/internal/http"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/receipt"
	domainreceipt "github.com/MrJamesThe3rd/cagnotte/internal/receipt"
)

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	verifier := auth.NewVerifier("test-secret", "cagnotte")

	token, err := verifier.Issue(owner, time.Hour)
	require.NoError(t, err)

	receipts := receipt.NewMockReceipts(ctrl)
	receipts.EXPECT().List(gomock.Any(), owner).Return([]*domainreceipt.Receipt{}, nil)

	router := cagnottehttp.New(cagnottehttp.Handlers{
		Receipts: receipt.NewHandler(receipts),
	}, cagnottehttp.Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Authenticate:   verifier.Middleware,
		ServiceName:    "cagnotte-test",
	})

	type testCase struct {
		name       string
		request    func() *http.Request
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "HealthIsPublic",
			request:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/healthz", nil) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "MissingToken",
			request:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/api/v1/quittances", nil) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Authorized",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/quittances", nil)
				req.Header.Set("Authorization", "Bearer "+token)

				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "UnknownRoute",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
				req.Header.Set("Authorization", "Bearer "+token)

				return req
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.request())

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := cagnottehttp.New(cagnottehttp.Handlers{}, cagnottehttp.Options{
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recettes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
