package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
)

// foreignKeyViolation is the SQLSTATE raised when transferts rows still
// reference the envelope.
const foreignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectColumns.
func scanEnvelope(s scanner) (*envelope.Envelope, error) {
	var e envelope.Envelope

	var status string

	if err := s.Scan(
		&e.ID, &e.OwnerID, &e.Label, &e.InitialAmount, &e.AvailableBalance, &status, &e.Date,
		&e.AccountID, &e.BankValidated, &e.ValidatedAt, &e.Version,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Status = envelope.Status(status)

	return &e, nil
}

const selectColumns = `
	id, user_id, libelle, montant, solde_disponible, statut, date,
	compte_id, valide_banque, date_validation, version,
	created_at, updated_at, deleted_at
`

func (s *Store) CreateEnvelope(ctx context.Context, e *envelope.Envelope) error {
	query := `
		INSERT INTO recettes (user_id, libelle, montant, solde_disponible, statut, date, compte_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.OwnerID,
		e.Label,
		e.InitialAmount,
		e.AvailableBalance,
		e.Status,
		e.Date,
		e.AccountID,
	).Scan(&e.ID, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating envelope: %w", err)
	}

	return nil
}

func (s *Store) GetEnvelope(ctx context.Context, ownerID, id uuid.UUID) (*envelope.Envelope, error) {
	query := `SELECT ` + selectColumns + `
		FROM recettes
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`

	e, err := scanEnvelope(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, envelope.ErrNotFound
		}

		return nil, fmt.Errorf("getting envelope: %w", err)
	}

	return e, nil
}

func (s *Store) ListEnvelopes(ctx context.Context, ownerID uuid.UUID, filter envelope.ListFilter) ([]*envelope.Envelope, error) {
	query := `SELECT ` + selectColumns + `
		FROM recettes
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND statut = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.MinAmount != nil {
		query += fmt.Sprintf(" AND montant >= $%d", argIdx)

		args = append(args, *filter.MinAmount)
		argIdx++
	}

	if filter.MaxAmount != nil {
		query += fmt.Sprintf(" AND montant <= $%d", argIdx)

		args = append(args, *filter.MaxAmount)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += orderClause(filter)

	return s.list(ctx, query, args...)
}

func orderClause(filter envelope.ListFilter) string {
	col := envelope.SortCreated
	if filter.SortBy.Valid() {
		col = filter.SortBy
	}

	dir := "DESC"
	if filter.Ascending {
		dir = "ASC"
	}

	// col comes from a closed set, never from user input directly.
	return fmt.Sprintf(" ORDER BY %s %s, id", col, dir)
}

func (s *Store) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*envelope.Envelope, error) {
	query := `SELECT ` + selectColumns + `
		FROM recettes
		WHERE user_id = $1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC`

	return s.list(ctx, query, ownerID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*envelope.Envelope, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing envelopes: %w", err)
	}
	defer rows.Close()

	var envs []*envelope.Envelope

	for rows.Next() {
		e, err := scanEnvelope(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning envelope: %w", err)
		}

		envs = append(envs, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating envelopes: %w", err)
	}

	return envs, nil
}

func (s *Store) UpdateDetails(ctx context.Context, e *envelope.Envelope) error {
	query := `
		UPDATE recettes
		SET libelle = $1, statut = $2, date = $3, version = version + 1, updated_at = NOW()
		WHERE user_id = $4 AND id = $5 AND deleted_at IS NULL
		RETURNING version, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, e.Label, e.Status, e.Date, e.OwnerID, e.ID).
		Scan(&e.Version, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return envelope.ErrNotFound
		}

		return fmt.Errorf("updating envelope: %w", err)
	}

	return nil
}

// UpdateBalance writes the balance projection only if the row is still at version.
func (s *Store) UpdateBalance(ctx context.Context, ownerID, id uuid.UUID, balance decimal.Decimal, version int) (int, error) {
	query := `
		UPDATE recettes
		SET solde_disponible = $1, version = version + 1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3 AND version = $4
		RETURNING version
	`

	var newVersion int

	err := s.db.QueryRowContext(ctx, query, balance, ownerID, id, version).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, s.missingOrConflict(ctx, ownerID, id)
		}

		return 0, fmt.Errorf("updating envelope balance: %w", err)
	}

	return newVersion, nil
}

func (s *Store) missingOrConflict(ctx context.Context, ownerID, id uuid.UUID) error {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM recettes WHERE user_id = $1 AND id = $2)`,
		ownerID, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking envelope: %w", err)
	}

	if !exists {
		return envelope.ErrNotFound
	}

	return envelope.ErrVersionConflict
}

func (s *Store) SetBankValidated(ctx context.Context, e *envelope.Envelope) error {
	query := `
		UPDATE recettes
		SET valide_banque = $1,
		    date_validation = CASE WHEN $1 THEN NOW() ELSE NULL END,
		    version = version + 1,
		    updated_at = NOW()
		WHERE user_id = $2 AND id = $3 AND deleted_at IS NULL
		RETURNING date_validation, version, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, e.BankValidated, e.OwnerID, e.ID).
		Scan(&e.ValidatedAt, &e.Version, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return envelope.ErrNotFound
		}

		return fmt.Errorf("validating envelope: %w", err)
	}

	return nil
}

// SoftDelete trashes the envelope and its live expenses with one shared
// timestamp, so Restore can bring back exactly that set.
func (s *Store) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var deletedAt sql.NullTime

	err = dbTx.QueryRowContext(ctx, `
		UPDATE recettes
		SET deleted_at = NOW(), version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING deleted_at
	`, ownerID, id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return envelope.ErrNotFound
		}

		return fmt.Errorf("trashing envelope: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE depenses
		SET deleted_at = $1, updated_at = NOW()
		WHERE user_id = $2 AND recette_id = $3 AND deleted_at IS NULL
	`, deletedAt.Time, ownerID, id); err != nil {
		return fmt.Errorf("trashing linked expenses: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) Restore(ctx context.Context, ownerID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var deletedAt sql.NullTime

	err = dbTx.QueryRowContext(ctx, `
		SELECT deleted_at FROM recettes
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NOT NULL
		FOR UPDATE
	`, ownerID, id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return envelope.ErrNotFound
		}

		return fmt.Errorf("loading trashed envelope: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE depenses
		SET deleted_at = NULL, updated_at = NOW()
		WHERE user_id = $1 AND recette_id = $2 AND deleted_at = $3
	`, ownerID, id, deletedAt.Time); err != nil {
		return fmt.Errorf("restoring linked expenses: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE recettes
		SET deleted_at = NULL, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
	`, ownerID, id); err != nil {
		return fmt.Errorf("restoring envelope: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) HardDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recettes WHERE user_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return envelope.ErrHasTransfers
		}

		return fmt.Errorf("deleting envelope: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting envelope: %w", err)
	}

	if n == 0 {
		return envelope.ErrNotFound
	}

	return nil
}
