package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=transfer
type Transfers interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*transfer.Transfer, error)
	List(ctx context.Context, ownerID uuid.UUID, filter transfer.ListFilter) ([]*transfer.Transfer, error)
}

type Ledger interface {
	Transfer(ctx context.Context, ownerID uuid.UUID, params ledger.TransferParams) (*ledger.TransferResult, error)
	Refund(ctx context.Context, ownerID, transferID uuid.UUID) (*ledger.TransferResult, error)
	Complete(ctx context.Context, ownerID, transferID uuid.UUID) (*transfer.Transfer, error)
}

type Handler struct {
	transfers Transfers
	ledger    Ledger
}

func NewHandler(transfers Transfers, l Ledger) *Handler {
	return &Handler{transfers: transfers, ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/refund", h.refund)
	r.Post("/{id}/complete", h.complete)
}

type transferResponse struct {
	ID               uuid.UUID       `json:"id"`
	SourceEnvelopeID uuid.UUID       `json:"recette_source_id"`
	DestEnvelopeID   *uuid.UUID      `json:"recette_destination_id,omitempty"`
	DestAccountID    *uuid.UUID      `json:"compte_destination_id,omitempty"`
	Amount           decimal.Decimal `json:"montant"`
	Date             api.Date        `json:"date"`
	Description      string          `json:"description"`
	Status           transfer.Status `json:"statut"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// resultResponse reports the balances a transfer or refund left behind.
type resultResponse struct {
	Transfer             transferResponse `json:"transfert"`
	SourceAvailable      decimal.Decimal  `json:"solde_source"`
	DestinationAvailable *decimal.Decimal `json:"solde_destination,omitempty"`
	AccountOperationID   *uuid.UUID       `json:"operation_compte_id,omitempty"`
}

func toResponse(t *transfer.Transfer) transferResponse {
	return transferResponse{
		ID:               t.ID,
		SourceEnvelopeID: t.SourceEnvelopeID,
		DestEnvelopeID:   t.DestEnvelopeID,
		DestAccountID:    t.DestAccountID,
		Amount:           t.Amount,
		Date:             api.DateOf(t.Date),
		Description:      t.Description,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toResultResponse(res *ledger.TransferResult) resultResponse {
	out := resultResponse{
		Transfer:        toResponse(res.Transfer),
		SourceAvailable: res.Source.AvailableBalance,
	}

	if res.Destination != nil {
		out.DestinationAvailable = &res.Destination.AvailableBalance
	}

	if res.Operation != nil {
		out.AccountOperationID = &res.Operation.ID
	}

	return out
}

type createTransferRequest struct {
	SourceID       uuid.UUID       `json:"recette_source_id"`
	DestEnvelopeID *uuid.UUID      `json:"recette_destination_id"`
	DestAccountID  *uuid.UUID      `json:"compte_destination_id"`
	Amount         decimal.Decimal `json:"montant"`
	Date           api.Date        `json:"date"`
	Description    string          `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.ledger.Transfer(r.Context(), api.Owner(r), ledger.TransferParams{
		SourceID:       req.SourceID,
		DestEnvelopeID: req.DestEnvelopeID,
		DestAccountID:  req.DestAccountID,
		Amount:         req.Amount,
		Date:           req.Date.Time,
		Description:    req.Description,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResultResponse(res))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := api.NewQuery(r)

	filter := transfer.ListFilter{EnvelopeID: q.UUID("recette_id")}
	if s := q.String("statut"); s != nil {
		filter.Status = new(transfer.Status(*s))
	}

	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	ts, err := h.transfers.List(r.Context(), api.Owner(r), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]transferResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toResponse(t))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.transfers.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.ledger.Refund(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResultResponse(res))
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.ledger.Complete(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(t))
}
