package note

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("note not found")
	ErrEmptyLabel    = errors.New("note label cannot be empty")
	ErrInvalidAmount = errors.New("note amount must be positive")
	ErrInvalidKind   = errors.New("invalid note kind")
	ErrNotPending    = errors.New("note is no longer pending")
)

// Kind says what a note becomes once realized.
type Kind string

const (
	KindIncome  Kind = "recette"
	KindExpense Kind = "depense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Status string

const (
	StatusPending   Status = "en_attente"
	StatusConverted Status = "convertie"
	StatusCancelled Status = "annulee"
)

// Note is a planned income or expense that has not happened yet.
type Note struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        Kind
	Label       string
	Amount      decimal.Decimal
	PlannedDate time.Time
	// EnvelopeID is the envelope an expense note will be charged to.
	EnvelopeID  *uuid.UUID
	Status      Status
	ConvertedID *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateParams struct {
	Kind        Kind
	Label       string
	Amount      decimal.Decimal
	PlannedDate time.Time
	EnvelopeID  *uuid.UUID
}
