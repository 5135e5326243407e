package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/backup"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func collect[T any](ctx context.Context, q queryer, query string, ownerID uuid.UUID, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, rows.Err()
}

func (s *Store) Dump(ctx context.Context, ownerID uuid.UUID) (*backup.Document, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var doc backup.Document

	if doc.Accounts, err = collect(ctx, tx, `
		SELECT id, nom, type, type_portefeuille, solde_actuel, solde_initial, devise, actif, created_at
		FROM comptes_bancaires WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (a backup.Account, err error) {
			err = r.Scan(&a.ID, &a.Name, &a.Type, &a.WalletKind, &a.Balance, &a.InitialBalance, &a.Currency, &a.Active, &a.CreatedAt)
			return a, err
		}); err != nil {
		return nil, fmt.Errorf("dumping accounts: %w", err)
	}

	if doc.Operations, err = collect(ctx, tx, `
		SELECT id, compte_id, type, montant, description, date, created_at
		FROM operations_comptes WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (o backup.Operation, err error) {
			err = r.Scan(&o.ID, &o.AccountID, &o.Kind, &o.Amount, &o.Description, &o.Date, &o.CreatedAt)
			return o, err
		}); err != nil {
		return nil, fmt.Errorf("dumping operations: %w", err)
	}

	if doc.Envelopes, err = collect(ctx, tx, `
		SELECT id, libelle, montant, solde_disponible, statut, date, compte_id,
		       valide_banque, date_validation, created_at, deleted_at
		FROM recettes WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (e backup.Envelope, err error) {
			err = r.Scan(&e.ID, &e.Label, &e.Amount, &e.AvailableBalance, &e.Status, &e.Date, &e.AccountID,
				&e.BankValidated, &e.ValidatedAt, &e.CreatedAt, &e.DeletedAt)
			return e, err
		}); err != nil {
		return nil, fmt.Errorf("dumping envelopes: %w", err)
	}

	if doc.Expenses, err = collect(ctx, tx, `
		SELECT id, recette_id, libelle, montant, date, categorie, piece_jointe, created_at, deleted_at
		FROM depenses WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (x backup.Expense, err error) {
			err = r.Scan(&x.ID, &x.EnvelopeID, &x.Label, &x.Amount, &x.Date, &x.Category, &x.AttachmentKey, &x.CreatedAt, &x.DeletedAt)
			return x, err
		}); err != nil {
		return nil, fmt.Errorf("dumping expenses: %w", err)
	}

	if doc.Transfers, err = collect(ctx, tx, `
		SELECT id, recette_source_id, recette_destination_id, compte_destination_id,
		       montant, date, description, statut, created_at
		FROM transferts WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (t backup.Transfer, err error) {
			err = r.Scan(&t.ID, &t.SourceEnvelopeID, &t.DestEnvelopeID, &t.DestAccountID,
				&t.Amount, &t.Date, &t.Description, &t.Status, &t.CreatedAt)
			return t, err
		}); err != nil {
		return nil, fmt.Errorf("dumping transfers: %w", err)
	}

	if doc.Receipts, err = collect(ctx, tx, `
		SELECT id, transaction_id, locataire, logement, periode, montant, created_at
		FROM quittances WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (q backup.Receipt, err error) {
			err = r.Scan(&q.ID, &q.OperationID, &q.Tenant, &q.Unit, &q.Period, &q.Amount, &q.CreatedAt)
			return q, err
		}); err != nil {
		return nil, fmt.Errorf("dumping receipts: %w", err)
	}

	if doc.Notes, err = collect(ctx, tx, `
		SELECT id, type, libelle, montant, date_prevue, recette_id, statut, converti_id, created_at
		FROM notes WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (n backup.Note, err error) {
			err = r.Scan(&n.ID, &n.Kind, &n.Label, &n.Amount, &n.PlannedDate, &n.EnvelopeID, &n.Status, &n.ConvertedID, &n.CreatedAt)
			return n, err
		}); err != nil {
		return nil, fmt.Errorf("dumping notes: %w", err)
	}

	if doc.Rules, err = collect(ctx, tx, `
		SELECT id, motif, categorie, created_at
		FROM regles_categories WHERE user_id = $1 ORDER BY created_at, id`, ownerID,
		func(r *sql.Rows) (c backup.Rule, err error) {
			err = r.Scan(&c.ID, &c.Pattern, &c.Category, &c.CreatedAt)
			return c, err
		}); err != nil {
		return nil, fmt.Errorf("dumping category rules: %w", err)
	}

	return &doc, nil
}

// ownedTables lists tables in an order that satisfies foreign keys on delete.
var ownedTables = []string{
	"quittances",
	"notes",
	"transferts",
	"depenses",
	"recettes",
	"operations_comptes",
	"comptes_bancaires",
	"regles_categories",
}

func (s *Store) Replace(ctx context.Context, ownerID uuid.UUID, doc *backup.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range ownedTables {
		// table comes from the fixed list above.
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, ownerID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, a := range doc.Accounts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comptes_bancaires (id, user_id, nom, type, type_portefeuille, solde_actuel, solde_initial, devise, actif, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`,
			a.ID, ownerID, a.Name, a.Type, a.WalletKind, a.Balance, a.InitialBalance, a.Currency, a.Active, a.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring account %s: %w", a.ID, err)
		}
	}

	for _, o := range doc.Operations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO operations_comptes (id, user_id, compte_id, type, montant, description, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, ownerID, o.AccountID, o.Kind, o.Amount, o.Description, o.Date, o.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring operation %s: %w", o.ID, err)
		}
	}

	for _, e := range doc.Envelopes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recettes (id, user_id, libelle, montant, solde_disponible, statut, date, compte_id,
			                      valide_banque, date_validation, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), $12)`,
			e.ID, ownerID, e.Label, e.Amount, e.AvailableBalance, e.Status, e.Date, e.AccountID,
			e.BankValidated, e.ValidatedAt, e.CreatedAt, e.DeletedAt,
		); err != nil {
			return fmt.Errorf("restoring envelope %s: %w", e.ID, err)
		}
	}

	for _, x := range doc.Expenses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO depenses (id, user_id, recette_id, libelle, montant, date, categorie, piece_jointe, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)`,
			x.ID, ownerID, x.EnvelopeID, x.Label, x.Amount, x.Date, x.Category, x.AttachmentKey, x.CreatedAt, x.DeletedAt,
		); err != nil {
			return fmt.Errorf("restoring expense %s: %w", x.ID, err)
		}
	}

	for _, t := range doc.Transfers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transferts (id, user_id, recette_source_id, recette_destination_id, compte_destination_id,
			                        montant, date, description, statut, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`,
			t.ID, ownerID, t.SourceEnvelopeID, t.DestEnvelopeID, t.DestAccountID,
			t.Amount, t.Date, t.Description, t.Status, t.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring transfer %s: %w", t.ID, err)
		}
	}

	for _, q := range doc.Receipts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quittances (id, user_id, transaction_id, locataire, logement, periode, montant, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			q.ID, ownerID, q.OperationID, q.Tenant, q.Unit, q.Period, q.Amount, q.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring receipt %s: %w", q.ID, err)
		}
	}

	for _, n := range doc.Notes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, user_id, type, libelle, montant, date_prevue, recette_id, statut, converti_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`,
			n.ID, ownerID, n.Kind, n.Label, n.Amount, n.PlannedDate, n.EnvelopeID, n.Status, n.ConvertedID, n.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring note %s: %w", n.ID, err)
		}
	}

	for _, c := range doc.Rules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO regles_categories (id, user_id, motif, categorie, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, ownerID, c.Pattern, c.Category, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring category rule %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
