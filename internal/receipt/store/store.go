package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
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

func scanReceipt(s scanner) (*receipt.Receipt, error) {
	var r receipt.Receipt
	if err := s.Scan(&r.ID, &r.OwnerID, &r.OperationID, &r.Tenant, &r.Unit, &r.Period, &r.Amount, &r.CreatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

const selectColumns = `id, user_id, transaction_id, locataire, logement, periode, montant, created_at`

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	query := `
		INSERT INTO quittances (user_id, transaction_id, locataire, logement, periode, montant, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.OwnerID, r.OperationID, r.Tenant, r.Unit, r.Period, r.Amount).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (s *Store) GetReceipt(ctx context.Context, ownerID, id uuid.UUID) (*receipt.Receipt, error) {
	query := `SELECT ` + selectColumns + ` FROM quittances WHERE user_id = $1 AND id = $2`

	r, err := scanReceipt(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	return r, nil
}

func (s *Store) ListReceipts(ctx context.Context, ownerID uuid.UUID) ([]*receipt.Receipt, error) {
	query := `SELECT ` + selectColumns + ` FROM quittances WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var out []*receipt.Receipt

	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating receipts: %w", err)
	}

	return out, nil
}
