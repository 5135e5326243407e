package category

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=category
type Categorizer interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, label string) (string, bool, error)
	Learn(ctx context.Context, ownerID uuid.UUID, pattern, category string) error
	Rules(ctx context.Context, ownerID uuid.UUID) ([]categorize.Rule, error)
}

type Handler struct {
	svc Categorizer
}

func NewHandler(svc Categorizer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.rules)
	r.Post("/", h.learn)
	r.Get("/suggest", h.suggest)
}

type ruleDTO struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Pattern  string    `json:"motif"`
	Category string    `json:"categorie"`
}

type suggestResponse struct {
	Category *string `json:"categorie"`
}

func (h *Handler) rules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.Rules(r.Context(), api.Owner(r))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]ruleDTO, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ruleDTO{ID: rule.ID, Pattern: rule.Pattern, Category: rule.Category})
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req ruleDTO
	if !api.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Learn(r.Context(), api.Owner(r), req.Pattern, req.Category); err != nil {
		api.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("libelle")
	if label == "" {
		api.BadRequest(w, "libelle query parameter is required")
		return
	}

	category, ok, err := h.svc.Suggest(r.Context(), api.Owner(r), label)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var resp suggestResponse
	if ok {
		resp.Category = &category
	}

	api.JSON(w, http.StatusOK, resp)
}
