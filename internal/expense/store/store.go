package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
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

func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	if err := s.Scan(
		&e.ID, &e.OwnerID, &e.EnvelopeID, &e.Label, &e.Amount, &e.Date,
		&e.Category, &e.AttachmentKey, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

const selectColumns = `
	id, user_id, recette_id, libelle, montant, date,
	categorie, piece_jointe, created_at, updated_at, deleted_at
`

// CreateExpense inserts e, keeping e.ID when it is already set so a deleted
// row can be put back under its old identity.
func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	query := `
		INSERT INTO depenses (id, user_id, recette_id, libelle, montant, date, categorie, piece_jointe, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ID,
		e.OwnerID,
		e.EnvelopeID,
		e.Label,
		e.Amount,
		e.Date,
		e.Category,
		e.AttachmentKey,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, ownerID, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectColumns + `
		FROM depenses
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, ownerID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectColumns + `
		FROM depenses
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	if filter.EnvelopeID != nil {
		query += fmt.Sprintf(" AND recette_id = $%d", argIdx)

		args = append(args, *filter.EnvelopeID)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND categorie = $%d", argIdx)

		args = append(args, *filter.Category)
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
	}

	col := expense.SortCreated
	if filter.SortBy.Valid() {
		col = filter.SortBy
	}

	dir := "DESC"
	if filter.Ascending {
		dir = "ASC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s, id", col, dir)

	return s.list(ctx, query, args...)
}

func (s *Store) ListLiveByEnvelope(ctx context.Context, ownerID, envelopeID uuid.UUID) ([]*expense.Expense, error) {
	query := `SELECT ` + selectColumns + `
		FROM depenses
		WHERE user_id = $1 AND recette_id = $2 AND deleted_at IS NULL`

	return s.list(ctx, query, ownerID, envelopeID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateDetails(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE depenses
		SET libelle = $1, categorie = $2, date = $3, updated_at = NOW()
		WHERE user_id = $4 AND id = $5 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, e.Label, e.Category, e.Date, e.OwnerID, e.ID).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) SetAttachment(ctx context.Context, ownerID, id uuid.UUID, key *string) error {
	query := `UPDATE depenses SET piece_jointe = $1, updated_at = NOW() WHERE user_id = $2 AND id = $3`

	return s.execOne(ctx, "attaching receipt", query, key, ownerID, id)
}

func (s *Store) DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM depenses WHERE user_id = $1 AND id = $2`

	return s.execOne(ctx, "deleting expense", query, ownerID, id)
}

func (s *Store) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}
