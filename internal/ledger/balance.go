package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

// Breakdown is how an envelope's available balance is made up.
type Breakdown struct {
	Initial        decimal.Decimal
	Spent          decimal.Decimal
	TransferredOut decimal.Decimal
	TransferredIn  decimal.Decimal
}

func (b Breakdown) Available() decimal.Decimal {
	return b.Initial.Sub(b.Spent).Sub(b.TransferredOut).Add(b.TransferredIn)
}

// Derive computes the breakdown of env from the rows that reference it.
// Trashed expenses, expenses of other envelopes and refunded transfers are
// ignored, so callers may pass unfiltered slices.
func Derive(env *envelope.Envelope, expenses []*expense.Expense, transfers []*transfer.Transfer) Breakdown {
	b := Breakdown{
		Initial:        env.InitialAmount,
		Spent:          decimal.Zero,
		TransferredOut: decimal.Zero,
		TransferredIn:  decimal.Zero,
	}

	for _, e := range expenses {
		if e.DeletedAt != nil || e.EnvelopeID == nil || *e.EnvelopeID != env.ID {
			continue
		}

		b.Spent = b.Spent.Add(e.Amount)
	}

	for _, t := range transfers {
		d := TransferDelta(env.ID, t)

		switch d.Sign() {
		case -1:
			b.TransferredOut = b.TransferredOut.Sub(d)
		case 1:
			b.TransferredIn = b.TransferredIn.Add(d)
		}
	}

	return b
}

// AvailableBalance is the authoritative balance of env:
// initial - live expenses - outgoing transfers + incoming transfers.
func AvailableBalance(env *envelope.Envelope, expenses []*expense.Expense, transfers []*transfer.Transfer) decimal.Decimal {
	return Derive(env, expenses, transfers).Available()
}

// TransferDelta is the effect of t on envelopeID's balance.
func TransferDelta(envelopeID uuid.UUID, t *transfer.Transfer) decimal.Decimal {
	if !t.Applied() {
		return decimal.Zero
	}

	if t.SourceEnvelopeID == envelopeID {
		return t.Amount.Neg()
	}

	if t.DestEnvelopeID != nil && *t.DestEnvelopeID == envelopeID {
		return t.Amount
	}

	return decimal.Zero
}
