package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrOperationNotFound = errors.New("account operation not found")
	ErrEmptyName         = errors.New("account name cannot be empty")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient account balance")
	ErrInactive          = errors.New("account is inactive")
	ErrSameAccount       = errors.New("source and destination accounts are the same")
	ErrVersionConflict   = errors.New("account was modified concurrently")
)

// Account ("compte bancaire") holds money outside the envelopes.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Type           string
	WalletKind     string
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	Currency       string
	Active         bool
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OperationKind string

const (
	Credit OperationKind = "credit"
	Debit  OperationKind = "debit"
)

// Operation is one movement on an account's balance.
type Operation struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	Kind        OperationKind
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Signed returns the operation's effect on the balance.
func (o *Operation) Signed() decimal.Decimal {
	if o.Kind == Debit {
		return o.Amount.Neg()
	}

	return o.Amount
}

type CreateParams struct {
	Name           string
	Type           string
	WalletKind     string
	InitialBalance decimal.Decimal
	Currency       string
}

type UpdateParams struct {
	Name       *string
	Type       *string
	WalletKind *string
	Active     *bool
}

// RentDetails describe the receipt to issue when a transfer pays rent.
type RentDetails struct {
	Tenant string
	Unit   string
	Period string
}

type TransferParams struct {
	SourceID    uuid.UUID
	DestID      uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Rent        *RentDetails
}
