package envelope

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=envelope
type Repository interface {
	CreateEnvelope(ctx context.Context, e *Envelope) error
	GetEnvelope(ctx context.Context, ownerID, id uuid.UUID) (*Envelope, error)
	ListEnvelopes(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Envelope, error)
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Envelope, error)
	UpdateDetails(ctx context.Context, e *Envelope) error
	UpdateBalance(ctx context.Context, ownerID, id uuid.UUID, balance decimal.Decimal, version int) (int, error)
	SetBankValidated(ctx context.Context, e *Envelope) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	Restore(ctx context.Context, ownerID, id uuid.UUID) error
}

// Service exposes the envelope operations that do not move money.
// Creation and balance changes go through the ledger.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Envelope, error) {
	return s.repo.GetEnvelope(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Envelope, error) {
	if filter.SortBy == "" {
		filter.SortBy = SortCreated
	}

	if !filter.SortBy.Valid() {
		filter.SortBy = SortCreated
	}

	return s.repo.ListEnvelopes(ctx, ownerID, filter)
}

func (s *Service) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Envelope, error) {
	return s.repo.ListDeleted(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Envelope, error) {
	e, err := s.repo.GetEnvelope(ctx, ownerID, id)
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

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, ErrInvalidStatus
		}

		e.Status = *params.Status
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateDetails(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// ValidateBank marks the envelope as seen on the bank statement, or clears the mark.
func (s *Service) ValidateBank(ctx context.Context, ownerID, id uuid.UUID, validated bool) (*Envelope, error) {
	e, err := s.repo.GetEnvelope(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	e.BankValidated = validated
	if err := s.repo.SetBankValidated(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// SoftDelete moves the envelope and its live expenses to the trash.
func (s *Service) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, ownerID, id)
}

// Restore brings the envelope back together with the expenses trashed alongside it.
func (s *Service) Restore(ctx context.Context, ownerID, id uuid.UUID) (*Envelope, error) {
	if err := s.repo.Restore(ctx, ownerID, id); err != nil {
		return nil, err
	}

	return s.repo.GetEnvelope(ctx, ownerID, id)
}
