package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, ownerID uuid.UUID, label string) (string, error) {
	query := `
		SELECT categorie
		FROM regles_categories
		WHERE user_id = $1 AND $2 ILIKE '%' || motif || '%'
		ORDER BY LENGTH(motif) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, ownerID, label).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding category rule: %w", err)
	}

	return category, nil
}

func (s *Store) CreateRule(ctx context.Context, ownerID uuid.UUID, pattern, category string) error {
	query := `
		INSERT INTO regles_categories (user_id, motif, categorie, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, ownerID, pattern, category); err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context, ownerID uuid.UUID) ([]categorize.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, motif, categorie FROM regles_categories
		WHERE user_id = $1
		ORDER BY motif
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing category rules: %w", err)
	}
	defer rows.Close()

	var rules []categorize.Rule

	for rows.Next() {
		var r categorize.Rule
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Category); err != nil {
			return nil, fmt.Errorf("scanning category rule: %w", err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rules: %w", err)
	}

	return rules, nil
}
