package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
)

// Owner returns the authenticated owner. Routes are mounted behind the
// auth middleware, so a missing owner is a wiring bug.
func Owner(r *http.Request) uuid.UUID {
	ownerID, _ := auth.OwnerFrom(r.Context())
	return ownerID
}

// ID parses the {name} URL parameter, writing 400 when it is not a UUID.
func ID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}

// Decode reads a JSON body into v, writing 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// Query collects the first parse error so handlers check once.
type Query struct {
	r   *http.Request
	Err error
}

func NewQuery(r *http.Request) *Query {
	return &Query{r: r}
}

func (q *Query) fail(key string, err error) {
	if q.Err == nil {
		q.Err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (q *Query) String(key string) *string {
	if s := q.r.URL.Query().Get(key); s != "" {
		return &s
	}

	return nil
}

func (q *Query) Date(key string) *time.Time {
	s := q.r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		q.fail(key, err)
		return nil
	}

	return &t
}

func (q *Query) Decimal(key string) *decimal.Decimal {
	s := q.r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		q.fail(key, err)
		return nil
	}

	return &d
}

func (q *Query) UUID(key string) *uuid.UUID {
	s := q.r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		q.fail(key, err)
		return nil
	}

	return &id
}

func (q *Query) Bool(key string) bool {
	s := q.r.URL.Query().Get(key)
	if s == "" {
		return false
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		q.fail(key, err)
	}

	return b
}
