package account

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=account
type Accounts interface {
	Create(ctx context.Context, ownerID uuid.UUID, params account.CreateParams) (*account.Account, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error)
	List(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*account.Account, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params account.UpdateParams) (*account.Account, error)
	Operations(ctx context.Context, ownerID, accountID uuid.UUID) ([]*account.Operation, error)
	Credit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error)
	Debit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error)
	Transfer(ctx context.Context, ownerID uuid.UUID, params account.TransferParams) (*account.TransferResult, error)
}

type Handler struct {
	accounts Accounts
}

func NewHandler(accounts Accounts) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/transfer", h.transfer)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/operations", h.operations)
	r.Post("/{id}/credit", h.credit)
	r.Post("/{id}/debit", h.debit)
}

type accountResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"nom"`
	Type           string          `json:"type"`
	WalletKind     string          `json:"type_portefeuille"`
	Balance        decimal.Decimal `json:"solde_actuel"`
	InitialBalance decimal.Decimal `json:"solde_initial"`
	Currency       string          `json:"devise"`
	Active         bool            `json:"actif"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type operationResponse struct {
	ID          uuid.UUID             `json:"id"`
	AccountID   uuid.UUID             `json:"compte_id"`
	Kind        account.OperationKind `json:"type"`
	Amount      decimal.Decimal       `json:"montant"`
	Description string                `json:"description"`
	Date        api.Date              `json:"date"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		WalletKind:     a.WalletKind,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Currency:       a.Currency,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toOperationResponse(o *account.Operation) operationResponse {
	return operationResponse{
		ID:          o.ID,
		AccountID:   o.AccountID,
		Kind:        o.Kind,
		Amount:      o.Amount,
		Description: o.Description,
		Date:        api.DateOf(o.Date),
		CreatedAt:   o.CreatedAt,
	}
}

type createAccountRequest struct {
	Name           string          `json:"nom"`
	Type           string          `json:"type"`
	WalletKind     string          `json:"type_portefeuille"`
	InitialBalance decimal.Decimal `json:"solde_initial"`
	Currency       string          `json:"devise"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !api.Decode(w, r, &req) {
		return
	}

	a, err := h.accounts.Create(r.Context(), api.Owner(r), account.CreateParams{
		Name:           req.Name,
		Type:           req.Type,
		WalletKind:     req.WalletKind,
		InitialBalance: req.InitialBalance,
		Currency:       req.Currency,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := api.NewQuery(r)
	activeOnly := q.Bool("actif")

	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	accounts, err := h.accounts.List(r.Context(), api.Owner(r), activeOnly)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.accounts.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(a))
}

type updateAccountRequest struct {
	Name       *string `json:"nom,omitempty"`
	Type       *string `json:"type,omitempty"`
	WalletKind *string `json:"type_portefeuille,omitempty"`
	Active     *bool   `json:"actif,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateAccountRequest
	if !api.Decode(w, r, &req) {
		return
	}

	a, err := h.accounts.Update(r.Context(), api.Owner(r), id, account.UpdateParams{
		Name:       req.Name,
		Type:       req.Type,
		WalletKind: req.WalletKind,
		Active:     req.Active,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(a))
}

func (h *Handler) operations(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	ops, err := h.accounts.Operations(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]operationResponse, 0, len(ops))
	for _, o := range ops {
		out = append(out, toOperationResponse(o))
	}

	api.JSON(w, http.StatusOK, out)
}

type movementRequest struct {
	Amount      decimal.Decimal `json:"montant"`
	Description string          `json:"description"`
	Date        api.Date        `json:"date"`
}

func (h *Handler) credit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.accounts.Credit)
}

func (h *Handler) debit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.accounts.Debit)
}

type postFunc func(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error)

func (h *Handler) post(w http.ResponseWriter, r *http.Request, fn postFunc) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req movementRequest
	if !api.Decode(w, r, &req) {
		return
	}

	op, err := fn(r.Context(), api.Owner(r), id, req.Amount, req.Description, req.Date.Time)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toOperationResponse(op))
}

type rentRequest struct {
	Tenant string `json:"locataire"`
	Unit   string `json:"logement"`
	Period string `json:"periode"`
}

type transferRequest struct {
	SourceID    uuid.UUID       `json:"compte_source_id"`
	DestID      uuid.UUID       `json:"compte_destination_id"`
	Amount      decimal.Decimal `json:"montant"`
	Date        api.Date        `json:"date"`
	Description string          `json:"description"`
	Rent        *rentRequest    `json:"loyer,omitempty"`
}

type transferResponse struct {
	Debit        operationResponse `json:"debit"`
	Credit       operationResponse `json:"credit"`
	ReceiptID    *uuid.UUID        `json:"quittance_id,omitempty"`
	ReceiptError string            `json:"erreur_quittance,omitempty"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !api.Decode(w, r, &req) {
		return
	}

	params := account.TransferParams{
		SourceID:    req.SourceID,
		DestID:      req.DestID,
		Amount:      req.Amount,
		Date:        req.Date.Time,
		Description: req.Description,
	}

	if req.Rent != nil {
		params.Rent = &account.RentDetails{Tenant: req.Rent.Tenant, Unit: req.Rent.Unit, Period: req.Rent.Period}
	}

	res, err := h.accounts.Transfer(r.Context(), api.Owner(r), params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := transferResponse{
		Debit:  toOperationResponse(res.Debit),
		Credit: toOperationResponse(res.Credit),
	}

	if res.Receipt != nil {
		resp.ReceiptID = &res.Receipt.ID
	}

	if res.ReceiptError != nil {
		resp.ReceiptError = res.ReceiptError.Error()
	}

	api.JSON(w, http.StatusCreated, resp)
}
