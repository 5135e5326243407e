package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
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

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Name, &a.Type, &a.WalletKind, &a.Balance, &a.InitialBalance,
		&a.Currency, &a.Active, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

const selectColumns = `
	id, user_id, nom, type, type_portefeuille, solde_actuel, solde_initial,
	devise, actif, version, created_at, updated_at
`

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO comptes_bancaires (user_id, nom, type, type_portefeuille, solde_actuel, solde_initial, devise, actif)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID, a.Name, a.Type, a.WalletKind, a.Balance, a.InitialBalance, a.Currency, a.Active,
	).Scan(&a.ID, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM comptes_bancaires WHERE user_id = $1 AND id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*account.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM comptes_bancaires WHERE user_id = $1`
	if activeOnly {
		query += ` AND actif`
	}

	query += ` ORDER BY nom, id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE comptes_bancaires
		SET nom = $1, type = $2, type_portefeuille = $3, actif = $4, version = version + 1, updated_at = NOW()
		WHERE user_id = $5 AND id = $6
		RETURNING version, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Type, a.WalletKind, a.Active, a.OwnerID, a.ID).
		Scan(&a.Version, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrNotFound
		}

		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) ApplyOperation(ctx context.Context, op *account.Operation, balance decimal.Decimal, version int) (int, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var newVersion int

	err = dbTx.QueryRowContext(ctx, `
		UPDATE comptes_bancaires
		SET solde_actuel = $1, version = version + 1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3 AND version = $4
		RETURNING version
	`, balance, op.OwnerID, op.AccountID, version).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, s.missingOrConflict(ctx, op.OwnerID, op.AccountID)
		}

		return 0, fmt.Errorf("updating account balance: %w", err)
	}

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO operations_comptes (user_id, compte_id, type, montant, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, op.OwnerID, op.AccountID, op.Kind, op.Amount, op.Description, op.Date).Scan(&op.ID, &op.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("recording account operation: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return newVersion, nil
}

func (s *Store) missingOrConflict(ctx context.Context, ownerID, id uuid.UUID) error {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM comptes_bancaires WHERE user_id = $1 AND id = $2)`,
		ownerID, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking account: %w", err)
	}

	if !exists {
		return account.ErrNotFound
	}

	return account.ErrVersionConflict
}

func (s *Store) RevertOperation(ctx context.Context, ownerID, opID uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var (
		accountID uuid.UUID
		kind      string
		amount    decimal.Decimal
	)

	err = dbTx.QueryRowContext(ctx, `
		DELETE FROM operations_comptes
		WHERE user_id = $1 AND id = $2
		RETURNING compte_id, type, montant
	`, ownerID, opID).Scan(&accountID, &kind, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrOperationNotFound
		}

		return fmt.Errorf("deleting account operation: %w", err)
	}

	op := account.Operation{Kind: account.OperationKind(kind), Amount: amount}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE comptes_bancaires
		SET solde_actuel = solde_actuel - $1, version = version + 1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`, op.Signed(), ownerID, accountID); err != nil {
		return fmt.Errorf("reverting account balance: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListOperations(ctx context.Context, ownerID, accountID uuid.UUID) ([]*account.Operation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, compte_id, type, montant, description, date, created_at
		FROM operations_comptes
		WHERE user_id = $1 AND compte_id = $2
		ORDER BY date DESC, created_at DESC
	`, ownerID, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing account operations: %w", err)
	}
	defer rows.Close()

	var out []*account.Operation

	for rows.Next() {
		var (
			op   account.Operation
			kind string
		)

		if err := rows.Scan(&op.ID, &op.OwnerID, &op.AccountID, &kind, &op.Amount, &op.Description, &op.Date, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning account operation: %w", err)
		}

		op.Kind = account.OperationKind(kind)
		out = append(out, &op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account operations: %w", err)
	}

	return out, nil
}
