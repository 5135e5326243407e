package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer/statement"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "NotFound", err: envelope.ErrNotFound, want: http.StatusNotFound},
		{name: "WrappedNotFound", err: fmt.Errorf("loading source: %w", envelope.ErrNotFound), want: http.StatusNotFound},
		{name: "Conflict", err: transfer.ErrInvalidTransition, want: http.StatusConflict},
		{name: "EnvelopeHasTransfers", err: envelope.ErrHasTransfers, want: http.StatusConflict},
		{name: "EnvelopeTrashed", err: fmt.Errorf("refunding transfer: %w", ledger.ErrEnvelopeTrashed), want: http.StatusConflict},
		{name: "Validation", err: ledger.ErrInsufficientBalance, want: http.StatusUnprocessableEntity},
		{name: "UnknownStatement", err: statement.ErrUnknownFormat, want: http.StatusUnprocessableEntity},
		{name: "Unauthorized", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "Unexpected", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.Status(tt.err))
		})
	}
}
