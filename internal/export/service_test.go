package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

type fakeSource struct {
	envs      []*envelope.Envelope
	exps      []*expense.Expense
	transfers []*transfer.Transfer
	urls      map[uuid.UUID]string
}

type envelopes struct{ *fakeSource }

func (f envelopes) List(context.Context, uuid.UUID, envelope.ListFilter) ([]*envelope.Envelope, error) {
	return f.envs, nil
}

type expenses struct{ *fakeSource }

func (f expenses) List(context.Context, uuid.UUID, expense.ListFilter) ([]*expense.Expense, error) {
	return f.exps, nil
}

type transfers struct{ *fakeSource }

func (f transfers) List(context.Context, uuid.UUID, transfer.ListFilter) ([]*transfer.Transfer, error) {
	return f.transfers, nil
}

func (f *fakeSource) ReceiptURL(_ context.Context, _ uuid.UUID, id uuid.UUID) (string, error) {
	u, ok := f.urls[id]
	if !ok {
		return "", errors.New("no attachment")
	}

	return u, nil
}

func newTestService(src *fakeSource) *Service {
	return NewService(envelopes{src}, expenses{src}, transfers{src}, src)
}

func readZip(t *testing.T, b []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	files := make(map[string]string)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		files[f.Name] = string(content)
	}

	return files
}

func TestService_WriteZip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ticket.pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("fake pdf content"))

			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	salary := &envelope.Envelope{
		ID: uuid.New(), Label: "Salaire mars", InitialAmount: decimal.NewFromInt(500000),
		AvailableBalance: decimal.NewFromInt(300000), Status: envelope.StatusReceived, Date: date,
	}
	savings := &envelope.Envelope{
		ID: uuid.New(), Label: "Épargne", InitialAmount: decimal.NewFromInt(10000),
		AvailableBalance: decimal.NewFromInt(10000), Status: envelope.StatusReceived, Date: date,
	}

	key := "receipts/x/2026/03/abc.pdf"
	broken := "receipts/x/2026/03/gone.png"
	food := &expense.Expense{
		ID: uuid.New(), EnvelopeID: &salary.ID, Label: "Marché Sandaga", Amount: decimal.RequireFromString("12500.5"),
		Date: date, Category: new("alimentation"), AttachmentKey: &key,
	}
	taxi := &expense.Expense{ID: uuid.New(), Label: "Taxi", Amount: decimal.NewFromInt(3000), Date: date, AttachmentKey: &broken}
	tr := &transfer.Transfer{
		ID: uuid.New(), SourceEnvelopeID: salary.ID, DestEnvelopeID: &savings.ID,
		Amount: decimal.NewFromInt(100000), Date: date, Status: transfer.StatusRefunded, Description: "mise de côté",
	}

	src := &fakeSource{
		envs:      []*envelope.Envelope{salary, savings},
		exps:      []*expense.Expense{food, taxi},
		transfers: []*transfer.Transfer{tr},
		urls: map[uuid.UUID]string{
			food.ID: ts.URL + "/ticket.pdf",
			taxi.ID: ts.URL + "/missing",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestService(src).WriteZip(context.Background(), uuid.New(), Filter{IncludeReceipts: true}, &buf))

	files := readZip(t, buf.Bytes())

	rows, err := csvRows(files["depenses.csv"])
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{food.ID.String(), "2026-03-09", "Marché Sandaga", "12500.50", "alimentation", "Salaire mars"}, rows[1])
	assert.Equal(t, "", rows[2][5])

	rows, err = csvRows(files["transferts.csv"])
	require.NoError(t, err)
	assert.Equal(t, []string{tr.ID.String(), "2026-03-09", "Salaire mars", "Épargne", "100000.00", "refunded", "mise de côté"}, rows[1])

	assert.Contains(t, files["recettes.csv"], "Salaire mars;500000.00;300000.00")

	receiptName := "justificatifs/20260309_March__Sandaga_" + food.ID.String()[:8] + ".pdf"
	assert.Equal(t, "fake pdf content", files[receiptName])

	assert.Contains(t, files["resume.txt"], "2026-03-09 | Marché Sandaga | -12500.50 | "+receiptName[len("justificatifs/"):])
	assert.Contains(t, files["resume.txt"], "2026-03-09 | Taxi | -3000.00 | Sans justificatif")
}

func TestService_WriteZip_DateRangeFiltersTransfers(t *testing.T) {
	env := &envelope.Envelope{ID: uuid.New(), Label: "A"}
	early := &transfer.Transfer{ID: uuid.New(), SourceEnvelopeID: env.ID, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	late := &transfer.Transfer{ID: uuid.New(), SourceEnvelopeID: env.ID, Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}

	src := &fakeSource{envs: []*envelope.Envelope{env}, transfers: []*transfer.Transfer{early, late}}
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, newTestService(src).WriteZip(context.Background(), uuid.New(), Filter{StartDate: &start}, &buf))

	files := readZip(t, buf.Bytes())
	assert.NotContains(t, files["transferts.csv"], early.ID.String())
	assert.Contains(t, files["transferts.csv"], late.ID.String())
}

func TestService_GenerateSummary(t *testing.T) {
	s := &Service{}

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{
			Expense:  &expense.Expense{Date: date, Amount: decimal.RequireFromString("12.5"), Label: "Hébergement"},
			FilePath: "justificatifs/facture.pdf",
		},
		{
			Expense: &expense.Expense{Date: date, Amount: decimal.NewFromInt(5), Label: "Café"},
		},
	}

	body := s.GenerateSummary(items)

	for _, sub := range []string{
		"2026-03-09 | Hébergement | -12.50 | facture.pdf",
		"2026-03-09 | Café | -5.00 | Sans justificatif",
	} {
		assert.Contains(t, body, sub)
	}
}

func csvRows(s string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ';'

	return r.ReadAll()
}
