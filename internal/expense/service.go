package expense

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Expense, error)
	// ListLiveByEnvelope returns the non-trashed expenses linked to the envelope.
	ListLiveByEnvelope(ctx context.Context, ownerID, envelopeID uuid.UUID) ([]*Expense, error)
	UpdateDetails(ctx context.Context, e *Expense) error
	SetAttachment(ctx context.Context, ownerID, id uuid.UUID, key *string) error
	DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error
}

// FileStore holds receipt attachments. Keys are opaque to this package.
type FileStore interface {
	Upload(ctx context.Context, ownerID uuid.UUID, name, contentType string, body io.Reader) (string, error)
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Service covers the expense operations that leave balances untouched.
// Recording and deleting expenses go through the ledger.
type Service struct {
	repo  Repository
	files FileStore
}

func NewService(repo Repository, files FileStore) *Service {
	return &Service{repo: repo, files: files}
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Expense, error) {
	if !filter.SortBy.Valid() {
		filter.SortBy = SortCreated
	}

	return s.repo.ListExpenses(ctx, ownerID, filter)
}

func (s *Service) UpdateDetails(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Label != nil {
		label := strings.TrimSpace(*params.Label)
		if label == "" {
			return nil, ErrEmptyLabel
		}

		e.Label = label
	}

	if params.Category != nil {
		category := strings.TrimSpace(*params.Category)
		if category == "" {
			e.Category = nil
		} else {
			e.Category = &category
		}
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateDetails(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// AttachReceipt uploads a receipt and links it to the expense, replacing any
// previous attachment.
func (s *Service) AttachReceipt(ctx context.Context, ownerID, id uuid.UUID, name, contentType string, body io.Reader) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	key, err := s.files.Upload(ctx, ownerID, name, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("uploading receipt: %w", err)
	}

	if err := s.repo.SetAttachment(ctx, ownerID, id, &key); err != nil {
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphaned receipt", "key", key, "error", delErr)
		}

		return nil, err
	}

	previous := e.AttachmentKey
	e.AttachmentKey = &key

	if previous != nil {
		s.RemoveAttachment(ctx, *previous)
	}

	return e, nil
}

// ReceiptURL returns a short-lived download link for the expense's receipt.
func (s *Service) ReceiptURL(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	e, err := s.repo.GetExpense(ctx, ownerID, id)
	if err != nil {
		return "", err
	}

	if e.AttachmentKey == nil {
		return "", ErrNoAttachment
	}

	return s.files.URL(ctx, *e.AttachmentKey)
}

// RemoveAttachment deletes a stored object. Failures are only logged.
func (s *Service) RemoveAttachment(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete receipt", "key", key, "error", err)
	}
}
