package expense

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

const maxReceiptSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=expense
type Expenses interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*expense.Expense, error)
	List(ctx context.Context, ownerID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error)
	UpdateDetails(ctx context.Context, ownerID, id uuid.UUID, params expense.UpdateParams) (*expense.Expense, error)
	AttachReceipt(ctx context.Context, ownerID, id uuid.UUID, name, contentType string, body io.Reader) (*expense.Expense, error)
	ReceiptURL(ctx context.Context, ownerID, id uuid.UUID) (string, error)
}

type Ledger interface {
	RecordExpense(ctx context.Context, ownerID uuid.UUID, params ledger.RecordExpenseParams) (*ledger.ExpenseResult, error)
	DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error)
}

type Handler struct {
	expenses Expenses
	ledger   Ledger
}

func NewHandler(expenses Expenses, l Ledger) *Handler {
	return &Handler{expenses: expenses, ledger: l}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/receipt", h.attachReceipt)
	r.Get("/{id}/receipt", h.receipt)
}

type expenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	EnvelopeID    *uuid.UUID      `json:"recette_id,omitempty"`
	Label         string          `json:"libelle"`
	Amount        decimal.Decimal `json:"montant"`
	Date          api.Date        `json:"date"`
	Category      *string         `json:"categorie,omitempty"`
	HasAttachment bool            `json:"piece_jointe"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type recordResponse struct {
	Expense                  expenseResponse  `json:"depense"`
	EnvelopeAvailableBalance *decimal.Decimal `json:"solde_disponible,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		EnvelopeID:    e.EnvelopeID,
		Label:         e.Label,
		Amount:        e.Amount,
		Date:          api.DateOf(e.Date),
		Category:      e.Category,
		HasAttachment: e.AttachmentKey != nil,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type createExpenseRequest struct {
	EnvelopeID *uuid.UUID      `json:"recette_id"`
	Label      string          `json:"libelle"`
	Amount     decimal.Decimal `json:"montant"`
	Date       api.Date        `json:"date"`
	Category   *string         `json:"categorie"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.ledger.RecordExpense(r.Context(), api.Owner(r), ledger.RecordExpenseParams{
		EnvelopeID: req.EnvelopeID,
		Label:      req.Label,
		Amount:     req.Amount,
		Date:       req.Date.Time,
		Category:   req.Category,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := recordResponse{Expense: toResponse(res.Expense)}
	if res.Envelope != nil {
		resp.EnvelopeAvailableBalance = &res.Envelope.AvailableBalance
	}

	api.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := api.NewQuery(r)

	filter := expense.ListFilter{
		EnvelopeID: q.UUID("recette_id"),
		Category:   q.String("categorie"),
		StartDate:  q.Date("start_date"),
		EndDate:    q.Date("end_date"),
		MinAmount:  q.Decimal("min_amount"),
		MaxAmount:  q.Decimal("max_amount"),
		Ascending:  q.Bool("asc"),
	}

	if s := q.String("sort"); s != nil {
		filter.SortBy = expense.SortField(*s)
	}

	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	exps, err := h.expenses.List(r.Context(), api.Owner(r), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]expenseResponse, 0, len(exps))
	for _, e := range exps {
		out = append(out, toResponse(e))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	exp, err := h.expenses.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(exp))
}

type updateExpenseRequest struct {
	Label    *string   `json:"libelle,omitempty"`
	Category *string   `json:"categorie,omitempty"`
	Date     *api.Date `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if !api.Decode(w, r, &req) {
		return
	}

	params := expense.UpdateParams{Label: req.Label, Category: req.Category}
	if req.Date != nil {
		params.Date = &req.Date.Time
	}

	exp, err := h.expenses.UpdateDetails(r.Context(), api.Owner(r), id, params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(exp))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.ledger.DeleteExpense(r.Context(), api.Owner(r), id); err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) attachReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptSize)

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		api.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	exp, err := h.expenses.AttachReceipt(r.Context(), api.Owner(r), id,
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(exp))
}

// receipt redirects to a short-lived download link.
func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	url, err := h.expenses.ReceiptURL(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
