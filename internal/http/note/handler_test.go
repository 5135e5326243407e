package note

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
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

func TestHandler_Convert(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	type testCase struct {
		name       string
		body       string
		wantDate   time.Time
		err        error
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "EmptyBodyUsesPlannedDate",
			wantStatus: http.StatusOK,
		},
		{
			name:       "ExplicitDate",
			body:       `{"date":"2026-11-05"}`,
			wantDate:   time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC),
			wantStatus: http.StatusOK,
		},
		{
			name:       "AlreadyConverted",
			err:        note.ErrNotPending,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockNotes(ctrl)
			m.EXPECT().
				Convert(gomock.Any(), owner, id, gomock.Any()).
				DoAndReturn(func(_ context.Context, _, _ uuid.UUID, date time.Time) (*note.Note, error) {
					assert.Equal(t, tt.wantDate, date)

					if tt.err != nil {
						return nil, tt.err
					}

					return &note.Note{ID: id, Status: note.StatusConverted}, nil
				})

			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(http.MethodPost, "/"+id.String()+"/convert", nil)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/"+id.String()+"/convert", strings.NewReader(tt.body))
			}

			rec := serve(NewHandler(m), owner, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_ListByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()

	m := NewMockNotes(ctrl)
	m.EXPECT().
		List(gomock.Any(), owner, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, status *note.Status) ([]*note.Note, error) {
			require.NotNil(t, status)
			assert.Equal(t, note.StatusPending, *status)

			return []*note.Note{{ID: uuid.New(), Kind: note.KindExpense, Status: note.StatusPending}}, nil
		})

	rec := serve(NewHandler(m), owner, httptest.NewRequest(http.MethodGet, "/?statut=en_attente", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statut":"en_attente"`)
}
