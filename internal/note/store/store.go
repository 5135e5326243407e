package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/note"
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

func scanNote(s scanner) (*note.Note, error) {
	var (
		n            note.Note
		kind, status string
	)

	if err := s.Scan(
		&n.ID, &n.OwnerID, &kind, &n.Label, &n.Amount, &n.PlannedDate,
		&n.EnvelopeID, &status, &n.ConvertedID, &n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		return nil, err
	}

	n.Kind = note.Kind(kind)
	n.Status = note.Status(status)

	return &n, nil
}

const selectColumns = `
	id, user_id, type, libelle, montant, date_prevue,
	recette_id, statut, converti_id, created_at, updated_at
`

func (s *Store) CreateNote(ctx context.Context, n *note.Note) error {
	query := `
		INSERT INTO notes (user_id, type, libelle, montant, date_prevue, recette_id, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		n.OwnerID, n.Kind, n.Label, n.Amount, n.PlannedDate, n.EnvelopeID, n.Status,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	return nil
}

func (s *Store) GetNote(ctx context.Context, ownerID, id uuid.UUID) (*note.Note, error) {
	query := `SELECT ` + selectColumns + ` FROM notes WHERE user_id = $1 AND id = $2`

	n, err := scanNote(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, note.ErrNotFound
		}

		return nil, fmt.Errorf("getting note: %w", err)
	}

	return n, nil
}

func (s *Store) ListNotes(ctx context.Context, ownerID uuid.UUID, status *note.Status) ([]*note.Note, error) {
	query := `SELECT ` + selectColumns + ` FROM notes WHERE user_id = $1`
	args := []any{ownerID}

	if status != nil {
		query += ` AND statut = $2`

		args = append(args, *status)
	}

	query += ` ORDER BY date_prevue, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var out []*note.Note

	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}

		out = append(out, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, from, to note.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notes SET statut = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3 AND statut = $4
	`, to, ownerID, id, from)
	if err != nil {
		return fmt.Errorf("updating note status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating note status: %w", err)
	}

	if n == 0 {
		if _, err := s.GetNote(ctx, ownerID, id); err != nil {
			return err
		}

		return note.ErrNotPending
	}

	return nil
}

func (s *Store) SetConverted(ctx context.Context, ownerID, id, convertedID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notes SET converti_id = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`, convertedID, ownerID, id)
	if err != nil {
		return fmt.Errorf("linking converted note: %w", err)
	}

	return nil
}
