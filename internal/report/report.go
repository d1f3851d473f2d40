package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

// PersonTotal is what one person owes over a period, split by payment state.
type PersonTotal struct {
	PersonID     uuid.UUID
	Name         string
	Color        string
	Total        decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
}

// PersonShare adds the person's share of the grand total, in percent.
type PersonShare struct {
	PersonTotal
	PercentOfTotal decimal.Decimal
}

// Summary aggregates bills by status.
type Summary struct {
	BillCount int
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Pending   decimal.Decimal
}

type MonthSummary struct {
	Month time.Month
	Summary
}

type CategoryTotal struct {
	CategoryID uuid.UUID
	Name       string
	Icon       string
	Count      int
	Total      decimal.Decimal
}

// SplitLine is one bill as seen from a single person's side.
type SplitLine struct {
	BillID           uuid.UUID
	Description      string
	InstallmentIndex int
	InstallmentCount int
	DueDate          *time.Time
	Status           bill.Status
	Amount           decimal.Decimal
	Paid             bool
	PaidAt           *time.Time
}

type PersonDetail struct {
	Person       *person.Person
	Lines        []SplitLine
	Total        decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
	BillCount    int
}

type Monthly struct {
	Period     bill.Period
	Summary    Summary
	People     []PersonTotal
	Categories []CategoryTotal
	Pending    []*bill.Bill
	Paid       []*bill.Bill
}
