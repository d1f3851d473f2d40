package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBill reads a bill row without its splits.
// Expected column order: id, description, amount, installment_index, installment_count, due_date,
// category_id, note, status, plan_id, created_at, updated_at
func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var status string

	if err := s.Scan(
		&b.ID, &b.Description, &b.Amount, &b.InstallmentIndex, &b.InstallmentCount, &b.DueDate,
		&b.CategoryID, &b.Note, &status, &b.PlanID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = bill.Status(status)

	return &b, nil
}

const selectBillColumns = `
	b.id, b.description, b.amount, b.installment_index, b.installment_count, b.due_date,
	b.category_id, b.note, b.status, b.plan_id, b.created_at, b.updated_at
`

// scanSplit expects: id, bill_id, person_id, amount, percentage, paid, paid_at
func scanSplit(s scanner) (bill.Split, error) {
	var sp bill.Split

	var pct decimal.NullDecimal

	if err := s.Scan(&sp.ID, &sp.BillID, &sp.PersonID, &sp.Amount, &pct, &sp.Paid, &sp.PaidAt); err != nil {
		return bill.Split{}, err
	}

	if pct.Valid {
		sp.Percentage = &pct.Decimal
	}

	return sp, nil
}

const selectSplitColumns = `s.id, s.bill_id, s.person_id, s.amount, s.percentage, s.paid, s.paid_at`

// where renders the filter as a WHERE clause over the bills table aliased as b.
func where(filter bill.ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}

	if filter.StartDate != nil {
		add("b.due_date >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add("b.due_date < $%d", *filter.EndDate)
	}

	if filter.PlanID != nil {
		add("b.plan_id = $%d", *filter.PlanID)
	}

	if filter.PersonID != nil {
		add("EXISTS (SELECT 1 FROM splits ps WHERE ps.bill_id = b.id AND ps.person_id = $%d)", *filter.PersonID)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		INSERT INTO bills (description, amount, installment_index, installment_count, due_date,
			category_id, note, status, plan_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Description,
		b.Amount,
		b.InstallmentIndex,
		b.InstallmentCount,
		b.DueDate,
		b.CategoryID,
		b.Note,
		b.Status,
		b.PlanID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills b WHERE b.id = $1`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	splits, err := s.ListSplits(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Splits = splits

	return b, nil
}

const (
	orderByDueDate     = ` ORDER BY b.due_date ASC NULLS LAST, b.description ASC, b.installment_index ASC`
	orderByInstallment = ` ORDER BY b.installment_index ASC`
)

// ListBills returns the bills matching filter, ordered by due date, with their splits loaded.
func (s *Store) ListBills(ctx context.Context, filter bill.ListFilter) ([]*bill.Bill, error) {
	return s.listBills(ctx, filter, orderByDueDate)
}

func (s *Store) listBills(ctx context.Context, filter bill.ListFilter, order string) ([]*bill.Bill, error) {
	cond, args := where(filter)

	query := `SELECT ` + selectBillColumns + ` FROM bills b` + cond + order

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.Bill

	byID := make(map[uuid.UUID]*bill.Bill)

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
		byID[b.ID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	if len(bills) == 0 {
		return bills, nil
	}

	if err := s.attachSplits(ctx, cond, args, byID); err != nil {
		return nil, err
	}

	return bills, nil
}

func (s *Store) attachSplits(ctx context.Context, cond string, args []any, byID map[uuid.UUID]*bill.Bill) error {
	query := `SELECT ` + selectSplitColumns + `
		FROM splits s
		JOIN bills b ON b.id = s.bill_id` + cond + `
		ORDER BY s.bill_id, s.person_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return fmt.Errorf("scanning split: %w", err)
		}

		if b, ok := byID[sp.BillID]; ok {
			b.Splits = append(b.Splits, sp)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating split rows: %w", err)
	}

	return nil
}

// UpdateBill writes only the fields set in patch.
func (s *Store) UpdateBill(ctx context.Context, id uuid.UUID, patch bill.Patch) error {
	var (
		sets []string
		args []any
	)

	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Description != nil {
		set("description", *patch.Description)
	}

	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}

	if patch.InstallmentIndex != nil {
		set("installment_index", *patch.InstallmentIndex)
	}

	if patch.InstallmentCount != nil {
		set("installment_count", *patch.InstallmentCount)
	}

	if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}

	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}

	if patch.Note != nil {
		set("note", *patch.Note)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE bills SET %s, updated_at = NOW() WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	return requireRow(res, "updating bill")
}

func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	return requireRow(res, "deleting bill")
}

func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bills
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, bill.StatusPaid, id)
	if err != nil {
		return fmt.Errorf("marking bill paid: %w", err)
	}

	return requireRow(res, "marking bill paid")
}

func (s *Store) ListPlan(ctx context.Context, planID uuid.UUID) ([]*bill.Bill, error) {
	return s.listBills(ctx, bill.ListFilter{PlanID: &planID}, orderByInstallment)
}

func (s *Store) DeletePlan(ctx context.Context, planID uuid.UUID) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE plan_id = $1`, planID)
	if err != nil {
		return 0, fmt.Errorf("deleting plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting plan: %w", err)
	}

	return int(n), nil
}

func (s *Store) ListSplits(ctx context.Context, billID uuid.UUID) ([]bill.Split, error) {
	query := `SELECT ` + selectSplitColumns + `
		FROM splits s
		WHERE s.bill_id = $1
		ORDER BY s.person_id`

	rows, err := s.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("listing splits: %w", err)
	}
	defer rows.Close()

	var splits []bill.Split

	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}

		splits = append(splits, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating split rows: %w", err)
	}

	return splits, nil
}

// UpsertSplit stores sp, replacing any previous split of the same person on the same bill.
func (s *Store) UpsertSplit(ctx context.Context, sp *bill.Split) error {
	query := `
		INSERT INTO splits (bill_id, person_id, amount, percentage, paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (bill_id, person_id) DO UPDATE
		SET amount = EXCLUDED.amount, percentage = EXCLUDED.percentage,
			paid = EXCLUDED.paid, paid_at = EXCLUDED.paid_at
		RETURNING id
	`

	var pct decimal.NullDecimal
	if sp.Percentage != nil {
		pct = decimal.NewNullDecimal(*sp.Percentage)
	}

	err := s.db.QueryRowContext(ctx, query,
		sp.BillID,
		sp.PersonID,
		sp.Amount,
		pct,
		sp.Paid,
		sp.PaidAt,
	).Scan(&sp.ID)
	if err != nil {
		return fmt.Errorf("upserting split: %w", err)
	}

	return nil
}

func (s *Store) DeleteSplits(ctx context.Context, billID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM splits WHERE bill_id = $1`, billID); err != nil {
		return fmt.Errorf("deleting splits: %w", err)
	}

	return nil
}

func (s *Store) MarkSplitPaid(ctx context.Context, billID, personID uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE splits
		SET paid = TRUE, paid_at = $1
		WHERE bill_id = $2 AND person_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, paidAt, billID, personID)
	if err != nil {
		return fmt.Errorf("marking split paid: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking split paid: %w", err)
	}

	if n == 0 {
		return bill.ErrSplitNotFound
	}

	return nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return bill.ErrNotFound
	}

	return nil
}
