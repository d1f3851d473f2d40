package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/matching"
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

const selectRuleColumns = `id, pattern, description, category_id, created_at`

func scanRule(s scanner) (*matching.Rule, error) {
	var (
		r          matching.Rule
		categoryID uuid.NullUUID
	)

	if err := s.Scan(&r.ID, &r.Pattern, &r.Description, &categoryID, &r.CreatedAt); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		r.CategoryID = &categoryID.UUID
	}

	return &r, nil
}

func (s *Store) FindRule(ctx context.Context, rawDescription string) (*matching.Rule, error) {
	query := `
		SELECT ` + selectRuleColumns + `
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	r, err := scanRule(s.db.QueryRowContext(ctx, query, rawDescription))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding rule: %w", err)
	}

	return r, nil
}

func (s *Store) SaveRule(ctx context.Context, r *matching.Rule) error {
	query := `
		INSERT INTO category_rules (pattern, description, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (LOWER(pattern)) DO UPDATE
		SET description = EXCLUDED.description, category_id = EXCLUDED.category_id
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, r.Pattern, r.Description, r.CategoryID).Scan(&r.ID, &r.CreatedAt); err != nil {
		return fmt.Errorf("saving rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]*matching.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectRuleColumns+` FROM category_rules ORDER BY pattern ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*matching.Rule

	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rule rows: %w", err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rule: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
