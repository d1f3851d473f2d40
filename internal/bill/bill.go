package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("bill not found")
	ErrNothingImported = errors.New("no imported transaction could be saved")
)

// Status represents the lifecycle state of a bill.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"

	// Reserved; nothing in the service moves a bill into these states yet.
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}

	return false
}

// Bill is a single obligation, possibly one installment of a larger purchase.
type Bill struct {
	ID               uuid.UUID
	Description      string
	Amount           decimal.Decimal
	InstallmentIndex int
	InstallmentCount int
	DueDate          *time.Time
	CategoryID       *uuid.UUID
	Note             string
	Status           Status
	PlanID           *uuid.UUID
	Splits           []Split // Loaded on read
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Split is one person's share of a bill.
type Split struct {
	ID         uuid.UUID
	BillID     uuid.UUID
	PersonID   uuid.UUID
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
	Paid       bool
	PaidAt     *time.Time
}

// IsInstallment reports whether the bill belongs to a multi-part purchase.
func (b *Bill) IsInstallment() bool {
	return b.InstallmentCount > 1
}

// SplitFor returns the split owed by personID, if any.
func (b *Bill) SplitFor(personID uuid.UUID) (Split, bool) {
	for _, s := range b.Splits {
		if s.PersonID == personID {
			return s, true
		}
	}

	return Split{}, false
}

// Period selects a calendar month.
type Period struct {
	Month time.Month
	Year  int
}

// Bounds returns the first instant of the month and the first instant of the next one.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// ListFilter narrows bill listings. EndDate is exclusive.
type ListFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
	PlanID    *uuid.UUID
	PersonID  *uuid.UUID
}

// FilterFor returns a filter on due date restricted to p. A nil period matches everything.
func FilterFor(p *Period) ListFilter {
	if p == nil {
		return ListFilter{}
	}

	start, end := p.Bounds()

	return ListFilter{StartDate: &start, EndDate: &end}
}

// Patch holds the fields to change on a bill. Nil fields are left untouched.
// Status is not patchable; MarkPaid is the only transition.
type Patch struct {
	Description      *string
	Amount           *decimal.Decimal
	InstallmentIndex *int
	InstallmentCount *int
	DueDate          *time.Time
	CategoryID       *uuid.UUID
	Note             *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply returns a copy of b with the patch merged in.
func (p Patch) Apply(b Bill) Bill {
	if p.Description != nil {
		b.Description = *p.Description
	}

	if p.Amount != nil {
		b.Amount = *p.Amount
	}

	if p.InstallmentIndex != nil {
		b.InstallmentIndex = *p.InstallmentIndex
	}

	if p.InstallmentCount != nil {
		b.InstallmentCount = *p.InstallmentCount
	}

	if p.DueDate != nil {
		b.DueDate = p.DueDate
	}

	if p.CategoryID != nil {
		b.CategoryID = p.CategoryID
	}

	if p.Note != nil {
		b.Note = *p.Note
	}

	return b
}

// ImportedTransaction is a statement line normalized by an importer.
type ImportedTransaction struct {
	Description      string
	RawDescription   string
	Amount           decimal.Decimal
	Date             time.Time
	InstallmentIndex int
	InstallmentCount int
	CategoryID       *uuid.UUID
}

// IsInstallment reports whether the line is one part of a multi-part purchase.
func (t ImportedTransaction) IsInstallment() bool {
	return t.InstallmentCount > 1
}
