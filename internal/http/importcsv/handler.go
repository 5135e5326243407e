package importcsv

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=importcsv
type Importer interface {
	Preview(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*importer.Preview, error)
	Confirm(ctx context.Context, ownerID uuid.UUID, params importer.ConfirmParams) (*importer.Result, error)
}

type Handler struct {
	svc Importer
}

func NewHandler(svc Importer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Post("/confirm", h.confirm)
}

type draftDTO struct {
	Kind     importer.Kind   `json:"type"`
	Label    string          `json:"libelle"`
	Amount   decimal.Decimal `json:"montant"`
	Date     api.Date        `json:"date"`
	Category *string         `json:"categorie,omitempty"`
	Skip     bool            `json:"ignorer,omitempty"`
}

type previewResponse struct {
	Profile string     `json:"format"`
	Drafts  []draftDTO `json:"lignes"`
}

type confirmRequest struct {
	Drafts     []draftDTO `json:"lignes"`
	EnvelopeID *uuid.UUID `json:"recette_id"`
	AccountID  *uuid.UUID `json:"compte_id"`
}

type lineErrorDTO struct {
	Line  int    `json:"ligne"`
	Label string `json:"libelle"`
	Error string `json:"erreur"`
}

type confirmResponse struct {
	Envelopes []uuid.UUID    `json:"recettes"`
	Expenses  []uuid.UUID    `json:"depenses"`
	Skipped   int            `json:"ignorees"`
	Failed    []lineErrorDTO `json:"echecs"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		api.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	p, err := h.svc.Preview(r.Context(), api.Owner(r), file)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := previewResponse{Profile: p.Profile, Drafts: make([]draftDTO, 0, len(p.Drafts))}
	for _, d := range p.Drafts {
		resp.Drafts = append(resp.Drafts, draftDTO{
			Kind:     d.Kind,
			Label:    d.Label,
			Amount:   d.Amount,
			Date:     api.DateOf(d.Date),
			Category: d.Category,
			Skip:     d.Skip,
		})
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !api.Decode(w, r, &req) {
		return
	}

	params := importer.ConfirmParams{
		Drafts:     make([]importer.Draft, 0, len(req.Drafts)),
		EnvelopeID: req.EnvelopeID,
		AccountID:  req.AccountID,
	}
	for _, d := range req.Drafts {
		params.Drafts = append(params.Drafts, importer.Draft{
			Kind:     d.Kind,
			Label:    d.Label,
			Amount:   d.Amount,
			Date:     d.Date.Time,
			Category: d.Category,
			Skip:     d.Skip,
		})
	}

	res, err := h.svc.Confirm(r.Context(), api.Owner(r), params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := confirmResponse{
		Envelopes: res.Envelopes,
		Expenses:  res.Expenses,
		Skipped:   res.Skipped,
		Failed:    make([]lineErrorDTO, 0, len(res.Failed)),
	}
	for _, f := range res.Failed {
		resp.Failed = append(resp.Failed, lineErrorDTO{Line: f.Line, Label: f.Draft.Label, Error: f.Err.Error()})
	}

	status := http.StatusCreated
	if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	api.JSON(w, status, resp)
}
