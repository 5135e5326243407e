package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/export"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=export
type Exporter interface {
	WriteZip(ctx context.Context, ownerID uuid.UUID, filter export.Filter, w io.Writer) error
}

type Handler struct {
	svc Exporter
}

func NewHandler(svc Exporter) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams the archive, so a failure after the first byte can only
// be logged.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := api.NewQuery(r)

	filter := export.Filter{
		StartDate:       q.Date("start_date"),
		EndDate:         q.Date("end_date"),
		IncludeReceipts: q.Bool("justificatifs"),
	}
	if q.Err != nil {
		api.BadRequest(w, q.Err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"export_%s.zip\"", time.Now().Format("20060102")))

	if err := h.svc.WriteZip(r.Context(), api.Owner(r), filter, w); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
