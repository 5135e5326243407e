// Package export writes a read-only CSV snapshot of the ledger as a zip
// archive. The archive is not meant to be restored; see package backup.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

type EnvelopeLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter envelope.ListFilter) ([]*envelope.Envelope, error)
}

type ExpenseLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error)
}

type TransferLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter transfer.ListFilter) ([]*transfer.Transfer, error)
}

// ReceiptLinker resolves an expense's attachment to a downloadable URL.
type ReceiptLinker interface {
	ReceiptURL(ctx context.Context, ownerID, id uuid.UUID) (string, error)
}

type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	// IncludeReceipts downloads attachments into a justificatifs/ folder.
	IncludeReceipts bool
}

// Item is one exported expense with the archive path of its receipt, if any.
type Item struct {
	Expense  *expense.Expense
	FilePath string
}

type Service struct {
	envelopes EnvelopeLister
	expenses  ExpenseLister
	transfers TransferLister
	receipts  ReceiptLinker
	client    *http.Client
}

func NewService(envelopes EnvelopeLister, expenses ExpenseLister, transfers TransferLister, receipts ReceiptLinker) *Service {
	return &Service{
		envelopes: envelopes,
		expenses:  expenses,
		transfers: transfers,
		receipts:  receipts,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WriteZip writes recettes.csv, depenses.csv, transferts.csv and resume.txt to w.
func (s *Service) WriteZip(ctx context.Context, ownerID uuid.UUID, filter Filter, w io.Writer) error {
	envs, err := s.envelopes.List(ctx, ownerID, envelope.ListFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		SortBy:    envelope.SortDate,
		Ascending: true,
	})
	if err != nil {
		return fmt.Errorf("listing envelopes: %w", err)
	}

	exps, err := s.expenses.List(ctx, ownerID, expense.ListFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		SortBy:    expense.SortDate,
		Ascending: true,
	})
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}

	transfers, err := s.transfers.List(ctx, ownerID, transfer.ListFilter{})
	if err != nil {
		return fmt.Errorf("listing transfers: %w", err)
	}

	zw := zip.NewWriter(w)

	labels := make(map[uuid.UUID]string, len(envs))
	for _, e := range envs {
		labels[e.ID] = e.Label
	}

	if err := writeCSV(zw, "recettes.csv", envelopeRows(envs)); err != nil {
		return err
	}

	if err := writeCSV(zw, "depenses.csv", expenseRows(exps, labels)); err != nil {
		return err
	}

	if err := writeCSV(zw, "transferts.csv", transferRows(inRange(transfers, filter), labels)); err != nil {
		return err
	}

	items := make([]Item, 0, len(exps))

	for _, x := range exps {
		item := Item{Expense: x}

		if filter.IncludeReceipts && x.AttachmentKey != nil {
			p, err := s.downloadReceipt(ctx, zw, ownerID, x)
			if err != nil {
				slog.Warn("skipping receipt", "expense_id", x.ID, "error", err)
			} else {
				item.FilePath = p
			}
		}

		items = append(items, item)
	}

	f, err := zw.Create("resume.txt")
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}

	if _, err := io.WriteString(f, s.GenerateSummary(items)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func inRange(transfers []*transfer.Transfer, filter Filter) []*transfer.Transfer {
	out := transfers[:0:0]

	for _, t := range transfers {
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, t)
	}

	return out
}

func writeCSV(zw *zip.Writer, name string, rows [][]string) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	cw := csv.NewWriter(f)
	cw.Comma = ';'

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}

func envelopeRows(envs []*envelope.Envelope) [][]string {
	rows := [][]string{{"id", "date", "libelle", "montant", "solde_disponible", "statut", "valide_banque"}}

	for _, e := range envs {
		validated := "non"
		if e.BankValidated {
			validated = "oui"
		}

		rows = append(rows, []string{
			e.ID.String(), day(e.Date), e.Label, amount(e.InitialAmount), amount(e.AvailableBalance), string(e.Status), validated,
		})
	}

	return rows
}

func expenseRows(exps []*expense.Expense, labels map[uuid.UUID]string) [][]string {
	rows := [][]string{{"id", "date", "libelle", "montant", "categorie", "recette"}}

	for _, x := range exps {
		var category, env string

		if x.Category != nil {
			category = *x.Category
		}

		if x.EnvelopeID != nil {
			env = labels[*x.EnvelopeID]
		}

		rows = append(rows, []string{x.ID.String(), day(x.Date), x.Label, amount(x.Amount), category, env})
	}

	return rows
}

func transferRows(transfers []*transfer.Transfer, labels map[uuid.UUID]string) [][]string {
	rows := [][]string{{"id", "date", "source", "destination", "montant", "statut", "description"}}

	for _, t := range transfers {
		dest := ""

		switch {
		case t.DestEnvelopeID != nil:
			dest = labels[*t.DestEnvelopeID]
		case t.DestAccountID != nil:
			dest = "compte:" + t.DestAccountID.String()
		}

		rows = append(rows, []string{
			t.ID.String(), day(t.Date), labels[t.SourceEnvelopeID], dest, amount(t.Amount), string(t.Status), t.Description,
		})
	}

	return rows
}

func (s *Service) downloadReceipt(ctx context.Context, zw *zip.Writer, ownerID uuid.UUID, x *expense.Expense) (string, error) {
	url, err := s.receipts.ReceiptURL(ctx, ownerID, x.ID)
	if err != nil {
		return "", fmt.Errorf("resolving receipt url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	name := path.Join("justificatifs", determineFilename(resp, x))

	f, err := zw.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return name, nil
}

func determineFilename(resp *http.Response, x *expense.Expense) string {
	ext := path.Ext(*x.AttachmentKey)

	if ext == "" {
		ext = ".pdf"

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
				ext = exts[0]
			}
		}
	}

	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, x.Label)

	// Short id suffix keeps same-day, same-label receipts apart.
	return fmt.Sprintf("%s_%s_%s%s", x.Date.Format("20060102"), safe, x.ID.String()[:8], ext)
}

// GenerateSummary lists each exported expense with its receipt file.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		fileStatus := "Sans justificatif"
		if item.FilePath != "" {
			fileStatus = path.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | -%s | %s\n",
			day(item.Expense.Date), item.Expense.Label, amount(item.Expense.Amount), fileStatus)
	}

	return sb.String()
}
