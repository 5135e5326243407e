package categorize

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyPattern  = errors.New("rule pattern cannot be empty")
	ErrEmptyCategory = errors.New("rule category cannot be empty")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindMatch(ctx context.Context, ownerID uuid.UUID, label string) (string, error)
	CreateRule(ctx context.Context, ownerID uuid.UUID, pattern, category string) error
	ListRules(ctx context.Context, ownerID uuid.UUID) ([]Rule, error)
}

// Rule maps every label containing Pattern to Category.
type Rule struct {
	ID       uuid.UUID
	Pattern  string
	Category string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest rule whose pattern appears in label.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, label string) (string, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false, nil
	}

	category, err := s.repo.FindMatch(ctx, ownerID, label)
	if err != nil {
		return "", false, err
	}

	return category, category != "", nil
}

// Learn remembers that labels containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, pattern, category string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ErrEmptyPattern
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}

	return s.repo.CreateRule(ctx, ownerID, pattern, category)
}

func (s *Service) Rules(ctx context.Context, ownerID uuid.UUID) ([]Rule, error) {
	return s.repo.ListRules(ctx, ownerID)
}
