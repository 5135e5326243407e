package envelope

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=envelope
type Envelopes interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error)
	List(ctx context.Context, ownerID uuid.UUID, filter envelope.ListFilter) ([]*envelope.Envelope, error)
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*envelope.Envelope, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params envelope.UpdateParams) (*envelope.Envelope, error)
	ValidateBank(ctx context.Context, ownerID, id uuid.UUID, validated bool) (*envelope.Envelope, error)
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	Restore(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error)
}

type Ledger interface {
	CreateEnvelope(ctx context.Context, ownerID uuid.UUID, params ledger.CreateEnvelopeParams) (*envelope.Envelope, error)
	Balance(ctx context.Context, ownerID, envelopeID uuid.UUID) (*ledger.BalanceReport, error)
	Refresh(ctx context.Context, ownerID, envelopeID uuid.UUID) (*envelope.Envelope, error)
	DeleteEnvelope(ctx context.Context, ownerID, id uuid.UUID) error
}

type Handler struct {
	envelopes Envelopes
	ledger    Ledger
}

func NewHandler(envelopes Envelopes, l Ledger) *Handler {
	return &Handler{envelopes: envelopes, ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/deleted", h.listDeleted)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/restore", h.restore)
	r.Patch("/{id}/validate", h.validate)
	r.Get("/{id}/balance", h.balance)
	r.Post("/{id}/balance/refresh", h.refresh)
}

type createEnvelopeRequest struct {
	Label     string          `json:"libelle"`
	Amount    decimal.Decimal `json:"montant"`
	Date      api.Date        `json:"date"`
	Status    envelope.Status `json:"statut"`
	AccountID *uuid.UUID      `json:"compte_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEnvelopeRequest
	if !api.Decode(w, r, &req) {
		return
	}

	env, err := h.ledger.CreateEnvelope(r.Context(), api.Owner(r), ledger.CreateEnvelopeParams{
		Label:     req.Label,
		Amount:    req.Amount,
		Date:      req.Date.Time,
		Status:    req.Status,
		AccountID: req.AccountID,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(env))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := api.NewQuery(r)

	filter := envelope.ListFilter{
		MinAmount: q.Decimal("min_amount"),
		MaxAmount: q.Decimal("max_amount"),
		StartDate: q.Date("start_date"),
		EndDate:   q.Date("end_date"),
		Ascending: q.Bool("asc"),
	}

	if s := q.String("statut"); s != nil {
		filter.Status = new(envelope.Status(*s))
	}

	if s := q.String("sort"); s != nil {
		filter.SortBy = envelope.SortField(*s)
	}

	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	envs, err := h.envelopes.List(r.Context(), api.Owner(r), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(envs))
}

func (h *Handler) listDeleted(w http.ResponseWriter, r *http.Request) {
	envs, err := h.envelopes.ListDeleted(r.Context(), api.Owner(r))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(envs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	env, err := h.envelopes.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(env))
}

type updateEnvelopeRequest struct {
	Label  *string          `json:"libelle,omitempty"`
	Status *envelope.Status `json:"statut,omitempty"`
	Date   *api.Date        `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateEnvelopeRequest
	if !api.Decode(w, r, &req) {
		return
	}

	params := envelope.UpdateParams{Label: req.Label, Status: req.Status}
	if req.Date != nil {
		params.Date = &req.Date.Time
	}

	env, err := h.envelopes.Update(r.Context(), api.Owner(r), id, params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(env))
}

// delete moves the envelope to the trash; ?permanent=true removes it for good.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	q := api.NewQuery(r)
	permanent := q.Bool("permanent")

	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	var err error
	if permanent {
		err = h.ledger.DeleteEnvelope(r.Context(), api.Owner(r), id)
	} else {
		err = h.envelopes.SoftDelete(r.Context(), api.Owner(r), id)
	}

	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	env, err := h.envelopes.Restore(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(env))
}

type validateRequest struct {
	Validated bool `json:"valide_banque"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req validateRequest
	if !api.Decode(w, r, &req) {
		return
	}

	env, err := h.envelopes.ValidateBank(r.Context(), api.Owner(r), id, req.Validated)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(env))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	report, err := h.ledger.Balance(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toBalanceResponse(report))
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	env, err := h.ledger.Refresh(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(env))
}
