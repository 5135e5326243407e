// Package backup exports an owner's whole ledger as one JSON document and
// restores it destructively.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cagnotte/internal/encoding"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=backup
type Repository interface {
	Dump(ctx context.Context, ownerID uuid.UUID) (*Document, error)
	// Replace deletes every row owned by ownerID and inserts doc, atomically.
	Replace(ctx context.Context, ownerID uuid.UUID, doc *Document) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Export(ctx context.Context, ownerID uuid.UUID) (*Document, error) {
	doc, err := s.repo.Dump(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dumping ledger: %w", err)
	}

	doc.Version = FormatVersion
	doc.ExportedAt = s.now().UTC()

	return doc, nil
}

// WriteJSON exports the owner's data to w.
func (s *Service) WriteJSON(ctx context.Context, ownerID uuid.UUID, w io.Writer) error {
	doc, err := s.Export(ctx, ownerID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// Decode reads a backup document in any supported text encoding.
func Decode(r io.Reader) (*Document, error) {
	text, err := encoding.Open(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	if text.Guessed {
		slog.Warn("backup is not UTF-8, decoding with a guessed charset", "charset", text.Charset, "chardet", text.Hint)
	}

	var doc Document
	if err := json.NewDecoder(text).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &doc, nil
}

// Restore replaces all of the owner's data with the document read from r.
func (s *Service) Restore(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*Document, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, ownerID, doc); err != nil {
		return nil, fmt.Errorf("restoring backup: %w", err)
	}

	slog.Info("backup restored",
		"owner_id", ownerID,
		"recettes", len(doc.Envelopes),
		"depenses", len(doc.Expenses),
		"transferts", len(doc.Transfers),
		"comptes", len(doc.Accounts),
	)

	return doc, nil
}
