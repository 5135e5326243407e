package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer/statement"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Ledger interface {
	CreateEnvelope(ctx context.Context, ownerID uuid.UUID, params ledger.CreateEnvelopeParams) (*envelope.Envelope, error)
	RecordExpense(ctx context.Context, ownerID uuid.UUID, params ledger.RecordExpenseParams) (*ledger.ExpenseResult, error)
}

type Categorizer interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, label string) (string, bool, error)
}

type Service struct {
	parser     *statement.Parser
	ledger     Ledger
	categories Categorizer
}

func NewService(l Ledger, categories Categorizer) *Service {
	return &Service{
		parser:     statement.NewParser(),
		ledger:     l,
		categories: categories,
	}
}

// Preview parses a statement into drafts without writing anything.
func (s *Service) Preview(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*Preview, error) {
	entries, profile, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}

	drafts := make([]Draft, 0, len(entries))

	for _, e := range entries {
		d := Draft{
			Kind:   KindIncome,
			Label:  e.Description,
			Amount: e.Amount.Abs(),
			Date:   e.Date,
		}

		if e.Amount.IsNegative() {
			d.Kind = KindExpense
			d.Category = s.suggest(ctx, ownerID, e.Description)
		}

		drafts = append(drafts, d)
	}

	return &Preview{Profile: profile, Drafts: drafts}, nil
}

func (s *Service) suggest(ctx context.Context, ownerID uuid.UUID, label string) *string {
	if s.categories == nil {
		return nil
	}

	category, ok, err := s.categories.Suggest(ctx, ownerID, label)
	if err != nil {
		slog.Warn("category suggestion failed", "error", err)
		return nil
	}

	if !ok {
		return nil
	}

	return &category
}

// Confirm records each draft through the ledger. Lines are independent: a
// failed line is reported in Result.Failed and the rest still go through.
func (s *Service) Confirm(ctx context.Context, ownerID uuid.UUID, params ConfirmParams) (*Result, error) {
	if len(params.Drafts) == 0 {
		return nil, ErrNothingToConfirm
	}

	res := &Result{}

	for i, d := range params.Drafts {
		if d.Skip {
			res.Skipped++
			continue
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch d.Kind {
		case KindIncome:
			env, err := s.ledger.CreateEnvelope(ctx, ownerID, ledger.CreateEnvelopeParams{
				Label:     d.Label,
				Amount:    d.Amount,
				Date:      d.Date,
				Status:    envelope.StatusReceived,
				AccountID: params.AccountID,
			})
			if err != nil {
				res.Failed = append(res.Failed, &LineError{Line: i + 1, Draft: d, Err: err})
				continue
			}

			res.Envelopes = append(res.Envelopes, env.ID)
		case KindExpense:
			out, err := s.ledger.RecordExpense(ctx, ownerID, ledger.RecordExpenseParams{
				EnvelopeID: params.EnvelopeID,
				Label:      d.Label,
				Amount:     d.Amount,
				Date:       d.Date,
				Category:   d.Category,
			})
			if err != nil {
				res.Failed = append(res.Failed, &LineError{Line: i + 1, Draft: d, Err: err})
				continue
			}

			res.Expenses = append(res.Expenses, out.Expense.ID)
		default:
			res.Failed = append(res.Failed, &LineError{Line: i + 1, Draft: d, Err: fmt.Errorf("unknown draft kind %q", d.Kind)})
		}
	}

	slog.Info("statement imported",
		"owner_id", ownerID,
		"envelopes", len(res.Envelopes),
		"expenses", len(res.Expenses),
		"skipped", res.Skipped,
		"failed", len(res.Failed),
	)

	return res, nil
}
