package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=note
type Repository interface {
	CreateNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, ownerID, id uuid.UUID) (*Note, error)
	ListNotes(ctx context.Context, ownerID uuid.UUID, status *Status) ([]*Note, error)
	// UpdateStatus moves the note to "to" only if it is still at "from".
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, from, to Status) error
	SetConverted(ctx context.Context, ownerID, id, convertedID uuid.UUID) error
}

// Ledger realizes notes into envelopes and expenses.
type Ledger interface {
	CreateEnvelope(ctx context.Context, ownerID uuid.UUID, params ledger.CreateEnvelopeParams) (*envelope.Envelope, error)
	RecordExpense(ctx context.Context, ownerID uuid.UUID, params ledger.RecordExpenseParams) (*ledger.ExpenseResult, error)
}

type Service struct {
	repo   Repository
	ledger Ledger
}

func NewService(repo Repository, ledger Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Note, error) {
	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	label := strings.TrimSpace(params.Label)
	if label == "" {
		return nil, ErrEmptyLabel
	}

	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	n := &Note{
		OwnerID:     ownerID,
		Kind:        params.Kind,
		Label:       label,
		Amount:      params.Amount,
		PlannedDate: params.PlannedDate,
		EnvelopeID:  params.EnvelopeID,
		Status:      StatusPending,
	}

	if n.Kind == KindIncome {
		n.EnvelopeID = nil
	}

	if err := s.repo.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Note, error) {
	return s.repo.GetNote(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, status *Status) ([]*Note, error) {
	return s.repo.ListNotes(ctx, ownerID, status)
}

func (s *Service) Cancel(ctx context.Context, ownerID, id uuid.UUID) (*Note, error) {
	n, err := s.repo.GetNote(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if n.Status != StatusPending {
		return nil, ErrNotPending
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, id, StatusPending, StatusCancelled); err != nil {
		return nil, err
	}

	n.Status = StatusCancelled

	return n, nil
}

// Convert realizes a pending note: an income note becomes an envelope, an
// expense note an expense. date overrides the planned date when set.
func (s *Service) Convert(ctx context.Context, ownerID, id uuid.UUID, date time.Time) (*Note, error) {
	n, err := s.repo.GetNote(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if n.Status != StatusPending {
		return nil, ErrNotPending
	}

	if date.IsZero() {
		date = n.PlannedDate
	}

	var convertedID uuid.UUID

	if err := saga.Run(ctx,
		saga.Step{
			Name: "claim note",
			Do: func(ctx context.Context) error {
				return s.repo.UpdateStatus(ctx, ownerID, id, StatusPending, StatusConverted)
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.UpdateStatus(ctx, ownerID, id, StatusConverted, StatusPending)
			},
		},
		saga.Step{
			Name: "realize note",
			Do: func(ctx context.Context) error {
				id, err := s.realize(ctx, n, date)
				convertedID = id

				return err
			},
		},
	); err != nil {
		return nil, fmt.Errorf("converting note: %w", err)
	}

	n.Status = StatusConverted
	n.ConvertedID = &convertedID

	if err := s.repo.SetConverted(ctx, ownerID, id, convertedID); err != nil {
		slog.Warn("failed to link converted note", "note_id", id, "converted_id", convertedID, "error", err)
	}

	return n, nil
}

func (s *Service) realize(ctx context.Context, n *Note, date time.Time) (uuid.UUID, error) {
	if n.Kind == KindIncome {
		env, err := s.ledger.CreateEnvelope(ctx, n.OwnerID, ledger.CreateEnvelopeParams{
			Label:  n.Label,
			Amount: n.Amount,
			Date:   date,
			Status: envelope.StatusReceived,
		})
		if err != nil {
			return uuid.Nil, err
		}

		return env.ID, nil
	}

	res, err := s.ledger.RecordExpense(ctx, n.OwnerID, ledger.RecordExpenseParams{
		EnvelopeID: n.EnvelopeID,
		Label:      n.Label,
		Amount:     n.Amount,
		Date:       date,
	})
	if err != nil {
		return uuid.Nil, err
	}

	return res.Expense.ID, nil
}
