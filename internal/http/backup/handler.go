package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/backup"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
)

const maxBackupSize = 50 << 20

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=backup
type Backups interface {
	WriteJSON(ctx context.Context, ownerID uuid.UUID, w io.Writer) error
	Restore(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*backup.Document, error)
}

type Handler struct {
	backups Backups
}

func NewHandler(backups Backups) *Handler {
	return &Handler{backups: backups}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.export)
	r.Post("/", h.restore)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"cagnotte_%s.json\"", time.Now().Format("20060102")))

	if err := h.backups.WriteJSON(r.Context(), api.Owner(r), w); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

type restoreResponse struct {
	Envelopes  int `json:"recettes"`
	Expenses   int `json:"depenses"`
	Transfers  int `json:"transferts"`
	Accounts   int `json:"comptes"`
	Operations int `json:"operations"`
	Receipts   int `json:"quittances"`
	Notes      int `json:"notes"`
	Rules      int `json:"regles_categories"`
}

// restore accepts either a multipart "file" field or the raw JSON body.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupSize)

	var body io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			api.BadRequest(w, "file field is required")
			return
		}
		defer file.Close()

		body = file
	}

	doc, err := h.backups.Restore(r.Context(), api.Owner(r), body)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, restoreResponse{
		Envelopes:  len(doc.Envelopes),
		Expenses:   len(doc.Expenses),
		Transfers:  len(doc.Transfers),
		Accounts:   len(doc.Accounts),
		Operations: len(doc.Operations),
		Receipts:   len(doc.Receipts),
		Notes:      len(doc.Notes),
		Rules:      len(doc.Rules),
	})
}
