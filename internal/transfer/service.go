package transfer

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transfer
type Repository interface {
	CreateTransfer(ctx context.Context, t *Transfer) error
	GetTransfer(ctx context.Context, ownerID, id uuid.UUID) (*Transfer, error)
	ListTransfers(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transfer, error)
	// UpdateStatus moves the transfer to "to" only if it is still at "from".
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, from, to Status) error
	DeleteTransfer(ctx context.Context, ownerID, id uuid.UUID) error
}

// Service is the read side of transfers. Creating, refunding and completing
// them changes balances and goes through the ledger.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transfer, error) {
	return s.repo.GetTransfer(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transfer, error) {
	return s.repo.ListTransfers(ctx, ownerID, filter)
}
