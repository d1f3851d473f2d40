package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/person"
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

func scanPerson(s scanner) (*person.Person, error) {
	var p person.Person
	if err := s.Scan(&p.ID, &p.Name, &p.Color, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

const selectPersonColumns = `id, name, color, active, created_at`

func (s *Store) CreatePerson(ctx context.Context, p *person.Person) error {
	query := `
		INSERT INTO people (name, color, active, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.Color, p.Active).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	return nil
}

func (s *Store) GetPerson(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	return s.get(ctx, `SELECT `+selectPersonColumns+` FROM people WHERE id = $1`, id)
}

func (s *Store) GetPersonByName(ctx context.Context, name string) (*person.Person, error) {
	return s.get(ctx, `SELECT `+selectPersonColumns+` FROM people WHERE name = $1`, name)
}

func (s *Store) get(ctx context.Context, query string, arg any) (*person.Person, error) {
	p, err := scanPerson(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, person.ErrNotFound
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return p, nil
}

func (s *Store) ListPeople(ctx context.Context, activeOnly bool) ([]*person.Person, error) {
	query := `SELECT ` + selectPersonColumns + ` FROM people`
	if activeOnly {
		query += ` WHERE active`
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*person.Person

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}

		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person rows: %w", err)
	}

	return people, nil
}

func (s *Store) CountPeople(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting people: %w", err)
	}

	return n, nil
}

func (s *Store) UpdatePerson(ctx context.Context, p *person.Person) error {
	res, err := s.db.ExecContext(ctx, `UPDATE people SET name = $1, color = $2 WHERE id = $3`, p.Name, p.Color, p.ID)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}

	return requireRow(res)
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE people SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("updating person status: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return person.ErrNotFound
	}

	return nil
}
