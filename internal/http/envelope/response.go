package envelope

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	"github.com/MrJamesThe3rd/cagnotte/internal/http/api"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
)

type envelopeResponse struct {
	ID               uuid.UUID       `json:"id"`
	Label            string          `json:"libelle"`
	Amount           decimal.Decimal `json:"montant"`
	AvailableBalance decimal.Decimal `json:"solde_disponible"`
	Status           envelope.Status `json:"statut"`
	Date             api.Date        `json:"date"`
	AccountID        *uuid.UUID      `json:"compte_id,omitempty"`
	BankValidated    bool            `json:"valide_banque"`
	ValidatedAt      *time.Time      `json:"date_validation,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
}

type balanceResponse struct {
	Envelope       envelopeResponse `json:"recette"`
	Initial        decimal.Decimal  `json:"montant_initial"`
	Spent          decimal.Decimal  `json:"depenses"`
	TransferredOut decimal.Decimal  `json:"transferts_sortants"`
	TransferredIn  decimal.Decimal  `json:"transferts_entrants"`
	Available      decimal.Decimal  `json:"solde_disponible"`
	InSync         bool             `json:"synchronise"`
}

func toResponse(e *envelope.Envelope) envelopeResponse {
	return envelopeResponse{
		ID:               e.ID,
		Label:            e.Label,
		Amount:           e.InitialAmount,
		AvailableBalance: e.AvailableBalance,
		Status:           e.Status,
		Date:             api.DateOf(e.Date),
		AccountID:        e.AccountID,
		BankValidated:    e.BankValidated,
		ValidatedAt:      e.ValidatedAt,
		Version:          e.Version,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		DeletedAt:        e.DeletedAt,
	}
}

func toResponseList(envs []*envelope.Envelope) []envelopeResponse {
	out := make([]envelopeResponse, 0, len(envs))
	for _, e := range envs {
		out = append(out, toResponse(e))
	}

	return out
}

func toBalanceResponse(r *ledger.BalanceReport) balanceResponse {
	return balanceResponse{
		Envelope:       toResponse(r.Envelope),
		Initial:        r.Breakdown.Initial,
		Spent:          r.Breakdown.Spent,
		TransferredOut: r.Breakdown.TransferredOut,
		TransferredIn:  r.Breakdown.TransferredIn,
		Available:      r.Available,
		InSync:         r.InSync,
	}
}
