package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransfer(s scanner) (*transfer.Transfer, error) {
	var t transfer.Transfer

	var status string

	if err := s.Scan(
		&t.ID, &t.OwnerID, &t.SourceEnvelopeID, &t.DestEnvelopeID, &t.DestAccountID,
		&t.Amount, &t.Date, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = transfer.Status(status)

	return &t, nil
}

const selectColumns = `
	id, user_id, recette_source_id, recette_destination_id, compte_destination_id,
	montant, date, description, statut, created_at, updated_at
`

func (s *Store) CreateTransfer(ctx context.Context, t *transfer.Transfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query := `
		INSERT INTO transferts (id, user_id, recette_source_id, recette_destination_id, compte_destination_id,
		                        montant, date, description, statut, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.SourceEnvelopeID,
		t.DestEnvelopeID,
		t.DestAccountID,
		t.Amount,
		t.Date,
		t.Description,
		t.Status,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transfer: %w", err)
	}

	return nil
}

func (s *Store) GetTransfer(ctx context.Context, ownerID, id uuid.UUID) (*transfer.Transfer, error) {
	query := `SELECT ` + selectColumns + ` FROM transferts WHERE user_id = $1 AND id = $2`

	t, err := scanTransfer(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transfer.ErrNotFound
		}

		return nil, fmt.Errorf("getting transfer: %w", err)
	}

	return t, nil
}

// ListTransfers filters by envelope on either side of the transfer.
func (s *Store) ListTransfers(ctx context.Context, ownerID uuid.UUID, filter transfer.ListFilter) ([]*transfer.Transfer, error) {
	query := `SELECT ` + selectColumns + ` FROM transferts WHERE user_id = $1`

	args := []any{ownerID}
	argIdx := 2

	if filter.EnvelopeID != nil {
		query += fmt.Sprintf(" AND (recette_source_id = $%d OR recette_destination_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.EnvelopeID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND statut = $%d", argIdx)

		args = append(args, *filter.Status)
	}

	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var out []*transfer.Transfer

	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfers: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, from, to transfer.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transferts SET statut = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3 AND statut = $4
	`, to, ownerID, id, from)
	if err != nil {
		return fmt.Errorf("updating transfer status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transfer status: %w", err)
	}

	if n == 0 {
		if _, err := s.GetTransfer(ctx, ownerID, id); err != nil {
			return err
		}

		return transfer.ErrInvalidTransition
	}

	return nil
}

func (s *Store) DeleteTransfer(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transferts WHERE user_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting transfer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transfer: %w", err)
	}

	if n == 0 {
		return transfer.ErrNotFound
	}

	return nil
}
