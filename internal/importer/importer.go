// Package importer turns bank statement lines into ledger drafts and
// records the ones the user confirms.
package importer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNothingToConfirm = errors.New("no drafts to confirm")

type Kind string

const (
	// Money out of the bank account becomes an expense.
	KindExpense Kind = "depense"
	// Money in becomes an envelope.
	KindIncome Kind = "recette"
)

type Draft struct {
	Kind     Kind
	Label    string
	Amount   decimal.Decimal
	Date     time.Time
	Category *string
	Skip     bool
}

type Preview struct {
	Profile string
	Drafts  []Draft
}

type ConfirmParams struct {
	Drafts []Draft
	// EnvelopeID charges every expense draft to one envelope. Nil records them unlinked.
	EnvelopeID *uuid.UUID
	// AccountID is credited for every income draft.
	AccountID *uuid.UUID
}

type LineError struct {
	Line  int
	Draft Draft
	Err   error
}

func (e *LineError) Error() string {
	return e.Draft.Label + ": " + e.Err.Error()
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type Result struct {
	Envelopes []uuid.UUID
	Expenses  []uuid.UUID
	Skipped   int
	Failed    []*LineError
}
