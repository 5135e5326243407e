// Package api holds the helpers every HTTP handler shares: JSON encoding,
// error to status mapping and request parameter parsing.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/backup"
	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer/statement"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// BadRequest reports a malformed request: unparseable body, id or query.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

var (
	notFound = []error{
		envelope.ErrNotFound,
		expense.ErrNotFound,
		expense.ErrNoAttachment,
		transfer.ErrNotFound,
		account.ErrNotFound,
		account.ErrOperationNotFound,
		receipt.ErrNotFound,
		note.ErrNotFound,
	}

	conflict = []error{
		transfer.ErrInvalidTransition,
		envelope.ErrVersionConflict,
		envelope.ErrHasTransfers,
		ledger.ErrEnvelopeTrashed,
		account.ErrVersionConflict,
		note.ErrNotPending,
	}

	unprocessable = []error{
		envelope.ErrEmptyLabel,
		envelope.ErrInvalidAmount,
		envelope.ErrInvalidStatus,
		expense.ErrEmptyLabel,
		expense.ErrInvalidAmount,
		transfer.ErrInvalidAmount,
		transfer.ErrInvalidDestination,
		transfer.ErrSameEnvelope,
		ledger.ErrInsufficientBalance,
		account.ErrEmptyName,
		account.ErrInvalidAmount,
		account.ErrInsufficientFunds,
		account.ErrInactive,
		account.ErrSameAccount,
		receipt.ErrMissingTenant,
		receipt.ErrMissingPeriod,
		receipt.ErrInvalidAmount,
		note.ErrEmptyLabel,
		note.ErrInvalidAmount,
		note.ErrInvalidKind,
		categorize.ErrEmptyPattern,
		categorize.ErrEmptyCategory,
		backup.ErrInvalidDocument,
		backup.ErrUnsupportedVersion,
		importer.ErrNothingToConfirm,
		statement.ErrUnknownFormat,
	}
)

// Status maps a service error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	case isAny(err, unprocessable):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// Error writes err with its mapped status. Unexpected errors are logged and
// hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, status, errorResponse{Error: "internal error"})

		return
	}

	JSON(w, status, errorResponse{Error: err.Error()})
}
