package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("expense not found")
	ErrEmptyLabel    = errors.New("expense label cannot be empty")
	ErrInvalidAmount = errors.New("expense amount must be positive")
	ErrNoAttachment  = errors.New("expense has no attachment")
)

// Expense ("dépense") is a withdrawal against zero or one envelope.
type Expense struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	EnvelopeID    *uuid.UUID
	Label         string
	Amount        decimal.Decimal
	Date          time.Time
	Category      *string
	AttachmentKey *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

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
	EnvelopeID *uuid.UUID
	Category   *string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	SortBy     SortField
	Ascending  bool
}

type UpdateParams struct {
	Label    *string
	Category *string
	Date     *time.Time
}
