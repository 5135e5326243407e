// Package ledger owns every operation that moves money between envelopes,
// expenses, transfers and bank accounts.
//
// An envelope's available balance is always derived from the rows that
// reference it (see AvailableBalance). The solde_disponible column is a
// projection of that value, rewritten after each mutation under an
// optimistic version check. Multi-step mutations run as sagas and are
// re-run when they lose a version race.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

var (
	ErrInsufficientBalance = errors.New("amount exceeds the envelope's available balance")
	ErrEnvelopeTrashed     = errors.New("transfer references an envelope in the trash")
)

type EnvelopeStore interface {
	CreateEnvelope(ctx context.Context, e *envelope.Envelope) error
	GetEnvelope(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error)
	UpdateBalance(ctx context.Context, ownerID, id uuid.UUID, balance decimal.Decimal, version int) (int, error)
	HardDelete(ctx context.Context, ownerID, id uuid.UUID) error
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e *expense.Expense) error
	GetExpense(ctx context.Context, ownerID, id uuid.UUID) (*expense.Expense, error)
	ListLiveByEnvelope(ctx context.Context, ownerID, envelopeID uuid.UUID) ([]*expense.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error
}

type TransferStore interface {
	CreateTransfer(ctx context.Context, t *transfer.Transfer) error
	GetTransfer(ctx context.Context, ownerID, id uuid.UUID) (*transfer.Transfer, error)
	ListTransfers(ctx context.Context, ownerID uuid.UUID, filter transfer.ListFilter) ([]*transfer.Transfer, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, from, to transfer.Status) error
	DeleteTransfer(ctx context.Context, ownerID, id uuid.UUID) error
}

// Accounts posts movements on bank accounts.
type Accounts interface {
	Credit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error)
	Debit(ctx context.Context, ownerID, accountID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (*account.Operation, error)
}

// Categorizer suggests a category for an expense label.
type Categorizer interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, label string) (string, bool, error)
}

type AttachmentRemover interface {
	RemoveAttachment(ctx context.Context, key string)
}

type CreateEnvelopeParams struct {
	Label  string
	Amount decimal.Decimal
	Date   time.Time
	Status envelope.Status
	// AccountID, when set, is credited with the same amount.
	AccountID *uuid.UUID
}

type RecordExpenseParams struct {
	EnvelopeID *uuid.UUID
	Label      string
	Amount     decimal.Decimal
	Date       time.Time
	Category   *string
}

type TransferParams struct {
	SourceID       uuid.UUID
	DestEnvelopeID *uuid.UUID
	DestAccountID  *uuid.UUID
	Amount         decimal.Decimal
	Date           time.Time
	Description    string
}

// ExpenseResult carries the recorded expense and, for linked expenses, the
// envelope row as written.
type ExpenseResult struct {
	Expense  *expense.Expense
	Envelope *envelope.Envelope
}

// TransferResult carries the rows a transfer or refund wrote. Destination is
// nil when the money went to a bank account; Operation is set instead.
type TransferResult struct {
	Transfer    *transfer.Transfer
	Source      *envelope.Envelope
	Destination *envelope.Envelope
	Operation   *account.Operation
}

type BalanceReport struct {
	Envelope  *envelope.Envelope
	Breakdown Breakdown
	Available decimal.Decimal
	// InSync is false when the stored projection drifted from the derived value.
	InSync bool
}
