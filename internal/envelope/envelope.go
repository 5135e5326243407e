package envelope

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("envelope not found")
	ErrEmptyLabel      = errors.New("envelope label cannot be empty")
	ErrInvalidAmount   = errors.New("envelope amount must be positive")
	ErrInvalidStatus   = errors.New("invalid envelope status")
	ErrVersionConflict = errors.New("envelope was modified concurrently")
	ErrHasTransfers    = errors.New("envelope still has pending or completed transfers")
)

// Status is the lifecycle state of an income envelope.
type Status string

const (
	StatusReceived  Status = "recue"
	StatusPlanned   Status = "prevue"
	StatusCancelled Status = "annulee"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusPlanned, StatusCancelled:
		return true
	}

	return false
}

// Envelope ("recette") is a pool of money set aside from one income event.
type Envelope struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Label         string
	InitialAmount decimal.Decimal
	// AvailableBalance is the stored projection of the derived balance.
	AvailableBalance decimal.Decimal
	Status           Status
	Date             time.Time
	AccountID        *uuid.UUID
	BankValidated    bool
	ValidatedAt      *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// SortField names the column a listing is ordered by.
type SortField string

const (
	SortCreated SortField = "created_at"
	SortDate    SortField = "date"
	SortAmount  SortField = "montant"
)

func (f SortField) Valid() bool {
	switch f {
	case SortCreated, SortDate, SortAmount:
		return true
	}

	return false
}

type ListFilter struct {
	Status    *Status
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortField
	Ascending bool
}

type UpdateParams struct {
	Label  *string
	Status *Status
	Date   *time.Time
}
