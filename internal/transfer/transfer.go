package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("transfer not found")
	ErrInvalidTransition  = errors.New("invalid transfer status transition")
	ErrInvalidAmount      = errors.New("transfer amount must be positive")
	ErrInvalidDestination = errors.New("transfer needs exactly one destination")
	ErrSameEnvelope       = errors.New("transfer source and destination are the same envelope")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRefunded:
		return true
	}

	return false
}

// CanTransition reports whether a transfer may move from one status to another.
// Only pending transfers move; completed and refunded are terminal.
func CanTransition(from, to Status) bool {
	return from == StatusPending && (to == StatusCompleted || to == StatusRefunded)
}

// Transfer moves available balance out of one envelope into either another
// envelope or a bank account.
type Transfer struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	SourceEnvelopeID uuid.UUID
	DestEnvelopeID   *uuid.UUID
	DestAccountID    *uuid.UUID
	Amount           decimal.Decimal
	Date             time.Time
	Description      string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Applied reports whether the transfer currently counts against balances.
func (t *Transfer) Applied() bool {
	return t.Status != StatusRefunded
}

type ListFilter struct {
	EnvelopeID *uuid.UUID
	Status     *Status
}
