package receipt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("receipt not found")
	ErrMissingTenant = errors.New("receipt tenant is required")
	ErrMissingPeriod = errors.New("receipt period is required")
	ErrInvalidAmount = errors.New("receipt amount must be positive")
)

// Receipt ("quittance") acknowledges a rent payment received on a bank account.
type Receipt struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OperationID uuid.UUID
	Tenant      string
	Unit        string
	Period      string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

type GenerateParams struct {
	OperationID uuid.UUID
	Tenant      string
	Unit        string
	Period      string
	Amount      decimal.Decimal
}

//go:generate mockgen -source=receipt.go -destination=repository_mock.go -package=receipt
type Repository interface {
	CreateReceipt(ctx context.Context, r *Receipt) error
	GetReceipt(ctx context.Context, ownerID, id uuid.UUID) (*Receipt, error)
	ListReceipts(ctx context.Context, ownerID uuid.UUID) ([]*Receipt, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Generate(ctx context.Context, ownerID uuid.UUID, params GenerateParams) (*Receipt, error) {
	tenant := strings.TrimSpace(params.Tenant)
	if tenant == "" {
		return nil, ErrMissingTenant
	}

	period := strings.TrimSpace(params.Period)
	if period == "" {
		return nil, ErrMissingPeriod
	}

	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	r := &Receipt{
		OwnerID:     ownerID,
		OperationID: params.OperationID,
		Tenant:      tenant,
		Unit:        strings.TrimSpace(params.Unit),
		Period:      period,
		Amount:      params.Amount,
	}

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Receipt, error) {
	return s.repo.ListReceipts(ctx, ownerID)
}
