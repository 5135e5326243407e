package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MrJamesThe3rd/cagnotte/internal/http/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/backup"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/category"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/export"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/importcsv"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/note"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/receipt"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/transfer"
)

type Handlers struct {
	Envelopes  *envelope.Handler
	Expenses   *expense.Handler
	Transfers  *transfer.Handler
	Accounts   *account.Handler
	Receipts   *receipt.Handler
	Notes      *note.Handler
	Categories *category.Handler
	Backup     *backup.Handler
	Export     *export.Handler
	Import     *importcsv.Handler
}

type Options struct {
	AllowedOrigins []string
	// Authenticate guards every /api/v1 route.
	Authenticate func(http.Handler) http.Handler
	ServiceName  string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Authenticate != nil {
			r.Use(opts.Authenticate)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/recettes", h.Envelopes.Routes)
			r.Route("/transferts", h.Transfers.Routes)
			r.Route("/comptes", h.Accounts.Routes)
			r.Route("/quittances", h.Receipts.Routes)
			r.Route("/notes", h.Notes.Routes)
			r.Route("/categories", h.Categories.Routes)
		})

		r.Route("/depenses", h.Expenses.Routes)
		r.Route("/backup", h.Backup.Routes)
		r.Route("/export", h.Export.Routes)
		r.Route("/import", h.Import.Routes)
	})

	return otelhttp.NewHandler(router, opts.ServiceName)
}
