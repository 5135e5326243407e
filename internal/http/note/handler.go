package note

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=note
type Notes interface {
	Create(ctx context.Context, ownerID uuid.UUID, params note.CreateParams) (*note.Note, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*note.Note, error)
	List(ctx context.Context, ownerID uuid.UUID, status *note.Status) ([]*note.Note, error)
	Cancel(ctx context.Context, ownerID, id uuid.UUID) (*note.Note, error)
	Convert(ctx context.Context, ownerID, id uuid.UUID, date time.Time) (*note.Note, error)
}

type Handler struct {
	notes Notes
}

func NewHandler(notes Notes) *Handler {
	return &Handler{notes: notes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/cancel", h.cancel)
	r.Post("/{id}/convert", h.convert)
}

type noteResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        note.Kind       `json:"type"`
	Label       string          `json:"libelle"`
	Amount      decimal.Decimal `json:"montant"`
	PlannedDate api.Date        `json:"date_prevue"`
	EnvelopeID  *uuid.UUID      `json:"recette_id,omitempty"`
	Status      note.Status     `json:"statut"`
	ConvertedID *uuid.UUID      `json:"converti_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(n *note.Note) noteResponse {
	return noteResponse{
		ID:          n.ID,
		Kind:        n.Kind,
		Label:       n.Label,
		Amount:      n.Amount,
		PlannedDate: api.DateOf(n.PlannedDate),
		EnvelopeID:  n.EnvelopeID,
		Status:      n.Status,
		ConvertedID: n.ConvertedID,
		CreatedAt:   n.CreatedAt,
	}
}

type createNoteRequest struct {
	Kind        note.Kind       `json:"type"`
	Label       string          `json:"libelle"`
	Amount      decimal.Decimal `json:"montant"`
	PlannedDate api.Date        `json:"date_prevue"`
	EnvelopeID  *uuid.UUID      `json:"recette_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !api.Decode(w, r, &req) {
		return
	}

	n, err := h.notes.Create(r.Context(), api.Owner(r), note.CreateParams{
		Kind:        req.Kind,
		Label:       req.Label,
		Amount:      req.Amount,
		PlannedDate: req.PlannedDate.Time,
		EnvelopeID:  req.EnvelopeID,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(n))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var status *note.Status
	if s := api.NewQuery(r).String("statut"); s != nil {
		status = new(note.Status(*s))
	}

	notes, err := h.notes.List(r.Context(), api.Owner(r), status)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toResponse(n))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.notes.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.notes.Cancel(r.Context(), api.Owner(r), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(n))
}

type convertRequest struct {
	Date api.Date `json:"date"`
}

// convert accepts an empty body; the note's planned date is used then.
func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ID(w, r, "id")
	if !ok {
		return
	}

	var req convertRequest
	if r.ContentLength != 0 && !api.Decode(w, r, &req) {
		return
	}

	n, err := h.notes.Convert(r.Context(), api.Owner(r), id, req.Date.Time)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(n))
}
