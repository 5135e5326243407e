package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormatVersion is written into every export and is the newest version Restore accepts.
const FormatVersion = 1

var (
	ErrInvalidDocument    = errors.New("invalid backup document")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
)

type Document struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Envelopes  []Envelope  `json:"recettes"`
	Expenses   []Expense   `json:"depenses"`
	Transfers  []Transfer  `json:"transferts"`
	Accounts   []Account   `json:"comptes"`
	Operations []Operation `json:"operations"`
	Receipts   []Receipt   `json:"quittances"`
	Notes      []Note      `json:"notes"`
	Rules      []Rule      `json:"regles_categories"`
}

type Envelope struct {
	ID               uuid.UUID       `json:"id"`
	Label            string          `json:"libelle"`
	Amount           decimal.Decimal `json:"montant"`
	AvailableBalance decimal.Decimal `json:"solde_disponible"`
	Status           string          `json:"statut"`
	Date             time.Time       `json:"date"`
	AccountID        *uuid.UUID      `json:"compte_id,omitempty"`
	BankValidated    bool            `json:"valide_banque"`
	ValidatedAt      *time.Time      `json:"date_validation,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
}

type Expense struct {
	ID            uuid.UUID       `json:"id"`
	EnvelopeID    *uuid.UUID      `json:"recette_id,omitempty"`
	Label         string          `json:"libelle"`
	Amount        decimal.Decimal `json:"montant"`
	Date          time.Time       `json:"date"`
	Category      *string         `json:"categorie,omitempty"`
	AttachmentKey *string         `json:"piece_jointe,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

type Transfer struct {
	ID               uuid.UUID       `json:"id"`
	SourceEnvelopeID uuid.UUID       `json:"recette_source_id"`
	DestEnvelopeID   *uuid.UUID      `json:"recette_destination_id,omitempty"`
	DestAccountID    *uuid.UUID      `json:"compte_destination_id,omitempty"`
	Amount           decimal.Decimal `json:"montant"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Status           string          `json:"statut"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Account struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"nom"`
	Type           string          `json:"type"`
	WalletKind     string          `json:"type_portefeuille"`
	Balance        decimal.Decimal `json:"solde_actuel"`
	InitialBalance decimal.Decimal `json:"solde_initial"`
	Currency       string          `json:"devise"`
	Active         bool            `json:"actif"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Operation struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"compte_id"`
	Kind        string          `json:"type"`
	Amount      decimal.Decimal `json:"montant"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Receipt struct {
	ID          uuid.UUID       `json:"id"`
	OperationID uuid.UUID       `json:"transaction_id"`
	Tenant      string          `json:"locataire"`
	Unit        string          `json:"logement"`
	Period      string          `json:"periode"`
	Amount      decimal.Decimal `json:"montant"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Note struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"type"`
	Label       string          `json:"libelle"`
	Amount      decimal.Decimal `json:"montant"`
	PlannedDate time.Time       `json:"date_prevue"`
	EnvelopeID  *uuid.UUID      `json:"recette_id,omitempty"`
	Status      string          `json:"statut"`
	ConvertedID *uuid.UUID      `json:"converti_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Rule struct {
	ID        uuid.UUID `json:"id"`
	Pattern   string    `json:"motif"`
	Category  string    `json:"categorie"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the version and that every reference points at a row
// present in the same document, so a restore never half-applies.
func (d *Document) Validate() error {
	if d.Version < 1 || d.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	envelopes := make(map[uuid.UUID]bool, len(d.Envelopes))
	for _, e := range d.Envelopes {
		if !e.Amount.IsPositive() {
			return invalid("recette %s: montant must be positive", e.ID)
		}

		envelopes[e.ID] = true
	}

	accounts := make(map[uuid.UUID]bool, len(d.Accounts))
	for _, a := range d.Accounts {
		accounts[a.ID] = true
	}

	for _, e := range d.Envelopes {
		if e.AccountID != nil && !accounts[*e.AccountID] {
			return invalid("recette %s: unknown compte %s", e.ID, *e.AccountID)
		}
	}

	for _, x := range d.Expenses {
		if !x.Amount.IsPositive() {
			return invalid("depense %s: montant must be positive", x.ID)
		}

		if x.EnvelopeID != nil && !envelopes[*x.EnvelopeID] {
			return invalid("depense %s: unknown recette %s", x.ID, *x.EnvelopeID)
		}
	}

	for _, t := range d.Transfers {
		if !envelopes[t.SourceEnvelopeID] {
			return invalid("transfert %s: unknown source recette %s", t.ID, t.SourceEnvelopeID)
		}

		switch {
		case (t.DestEnvelopeID == nil) == (t.DestAccountID == nil):
			return invalid("transfert %s: needs exactly one destination", t.ID)
		case t.DestEnvelopeID != nil && !envelopes[*t.DestEnvelopeID]:
			return invalid("transfert %s: unknown destination recette %s", t.ID, *t.DestEnvelopeID)
		case t.DestAccountID != nil && !accounts[*t.DestAccountID]:
			return invalid("transfert %s: unknown destination compte %s", t.ID, *t.DestAccountID)
		}
	}

	operations := make(map[uuid.UUID]bool, len(d.Operations))
	for _, o := range d.Operations {
		if !accounts[o.AccountID] {
			return invalid("operation %s: unknown compte %s", o.ID, o.AccountID)
		}

		operations[o.ID] = true
	}

	for _, r := range d.Receipts {
		if !operations[r.OperationID] {
			return invalid("quittance %s: unknown operation %s", r.ID, r.OperationID)
		}
	}

	for _, n := range d.Notes {
		if n.EnvelopeID != nil && !envelopes[*n.EnvelopeID] {
			return invalid("note %s: unknown recette %s", n.ID, *n.EnvelopeID)
		}
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
