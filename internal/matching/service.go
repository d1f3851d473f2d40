package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindRule returns the longest pattern contained in rawDescription, or nil when none matches.
	FindRule(ctx context.Context, rawDescription string) (*Rule, error)
	SaveRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the rule matching rawDescription, or nil if no rule applies.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (*Rule, error) {
	return s.repo.FindRule(ctx, rawDescription)
}

// Learn stores a rule. Saving an existing pattern replaces its targets.
func (s *Service) Learn(ctx context.Context, pattern, description string, categoryID *uuid.UUID) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	description = strings.TrimSpace(description)

	if pattern == "" {
		return nil, validation.New("pattern", "is required")
	}

	if description == "" && categoryID == nil {
		return nil, validation.New("description", "a description or a category is required")
	}

	r := &Rule{Pattern: pattern, Description: description, CategoryID: categoryID}
	if err := s.repo.SaveRule(ctx, r); err != nil {
		return nil, fmt.Errorf("saving rule: %w", err)
	}

	return r, nil
}

// Annotate returns a copy of txs with matching rules applied. Lines that already carry
// a category keep it.
func (s *Service) Annotate(ctx context.Context, txs []bill.ImportedTransaction) ([]bill.ImportedTransaction, error) {
	out := make([]bill.ImportedTransaction, len(txs))

	for i, tx := range txs {
		raw := tx.RawDescription
		if raw == "" {
			raw = tx.Description
		}

		r, err := s.repo.FindRule(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", raw, err)
		}

		if r != nil {
			if r.Description != "" {
				tx.Description = r.Description
			}

			if tx.CategoryID == nil && r.CategoryID != nil {
				tx.CategoryID = new(*r.CategoryID)
			}
		}

		out[i] = tx
	}

	return out, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, id)
}
