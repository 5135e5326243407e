package receipt

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=receipt
type Receipts interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*receipt.Receipt, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*receipt.Receipt, error)
}

type Handler struct {
	receipts Receipts
}

func NewHandler(receipts Receipts) *Handler {
	return &Handler{receipts: receipts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type receiptResponse struct {
	ID          uuid.UUID       `json:"id"`
	OperationID uuid.UUID       `json:"transaction_id"`
	Tenant      string          `json:"locataire"`
	Unit        string          `json:"logement"`
	Period      string          `json:"periode"`
	Amount      decimal.Decimal `json:"montant"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(q *receipt.Receipt) receiptResponse {
	return receiptResponse{
		ID:          q.ID,
		OperationID: q.OperationID,
		Tenant:      q.Tenant,
		Unit:        q.Unit,
		Period:      q.Period,
		Amount:      q.Amount,
		CreatedAt:   q.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receipts.List(r.Context(), api.Owner(r))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]receiptResponse, 0, len(receipts))
	for _, q := range receipts {
		out = append(out, toResponse(q))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	q, err := h.receipts.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(q))
}
