package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

//go:generate mockgen -source=service.go -destination=reader_mock.go -package=report
type BillReader interface {
	List(ctx context.Context, filter bill.ListFilter) ([]*bill.Bill, error)
}

type PersonReader interface {
	Get(ctx context.Context, id uuid.UUID) (*person.Person, error)
	List(ctx context.Context, activeOnly bool) ([]*person.Person, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]*category.Category, error)
}

// Service aggregates bills for reporting. Every method is read only; a nil period
// covers all time.
type Service struct {
	bills      BillReader
	people     PersonReader
	categories CategoryReader
}

func NewService(bills BillReader, people PersonReader, categories CategoryReader) *Service {
	return &Service{bills: bills, people: people, categories: categories}
}

// TotalPerPerson lists every active person by name, with zero totals for people who
// owe nothing in the period.
func (s *Service) TotalPerPerson(ctx context.Context, period *bill.Period) ([]PersonTotal, error) {
	bills, err := s.listBills(ctx, bill.FilterFor(period))
	if err != nil {
		return nil, err
	}

	return s.perPerson(ctx, bills)
}

func (s *Service) perPerson(ctx context.Context, bills []*bill.Bill) ([]PersonTotal, error) {
	people, err := s.people.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}

	totals := make([]PersonTotal, len(people))
	index := make(map[uuid.UUID]int, len(people))

	for i, p := range people {
		totals[i] = PersonTotal{
			PersonID:     p.ID,
			Name:         p.Name,
			Color:        p.Color,
			Total:        decimal.Zero,
			TotalPaid:    decimal.Zero,
			TotalPending: decimal.Zero,
		}
		index[p.ID] = i
	}

	for _, b := range bills {
		for _, sp := range b.Splits {
			i, ok := index[sp.PersonID]
			if !ok {
				continue
			}

			totals[i].Total = totals[i].Total.Add(sp.Amount)
			if sp.Paid {
				totals[i].TotalPaid = totals[i].TotalPaid.Add(sp.Amount)
			} else {
				totals[i].TotalPending = totals[i].TotalPending.Add(sp.Amount)
			}
		}
	}

	slices.SortStableFunc(totals, func(a, b PersonTotal) int {
		return strings.Compare(a.Name, b.Name)
	})

	return totals, nil
}

// GeneralSummary counts bills and sums their amounts by status.
func (s *Service) GeneralSummary(ctx context.Context, period *bill.Period) (Summary, error) {
	bills, err := s.listBills(ctx, bill.FilterFor(period))
	if err != nil {
		return Summary{}, err
	}

	return summarize(bills), nil
}

func summarize(bills []*bill.Bill) Summary {
	sum := Summary{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}

	for _, b := range bills {
		sum.BillCount++
		sum.Total = sum.Total.Add(b.Amount)

		switch b.Status {
		case bill.StatusPaid:
			sum.Paid = sum.Paid.Add(b.Amount)
		case bill.StatusPending:
			sum.Pending = sum.Pending.Add(b.Amount)
		}
	}

	return sum
}

// ByCategory lists every category with the bills filed under it, largest total first.
// Bills without a category are not counted.
func (s *Service) ByCategory(ctx context.Context, period *bill.Period) ([]CategoryTotal, error) {
	bills, err := s.listBills(ctx, bill.FilterFor(period))
	if err != nil {
		return nil, err
	}

	return s.byCategory(ctx, bills)
}

func (s *Service) byCategory(ctx context.Context, bills []*bill.Bill) ([]CategoryTotal, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	totals := make([]CategoryTotal, len(categories))
	index := make(map[uuid.UUID]int, len(categories))

	for i, c := range categories {
		totals[i] = CategoryTotal{CategoryID: c.ID, Name: c.Name, Icon: c.Icon, Total: decimal.Zero}
		index[c.ID] = i
	}

	for _, b := range bills {
		if b.CategoryID == nil {
			continue
		}

		i, ok := index[*b.CategoryID]
		if !ok {
			continue
		}

		totals[i].Count++
		totals[i].Total = totals[i].Total.Add(b.Amount)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return totals, nil
}

// MonthlyEvolution returns one summary per month of year, January first.
func (s *Service) MonthlyEvolution(ctx context.Context, year int) ([]MonthSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	bills, err := s.listBills(ctx, bill.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	byMonth := make(map[time.Month][]*bill.Bill)

	for _, b := range bills {
		if b.DueDate == nil {
			continue
		}

		byMonth[b.DueDate.Month()] = append(byMonth[b.DueDate.Month()], b)
	}

	out := make([]MonthSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, MonthSummary{Month: m, Summary: summarize(byMonth[m])})
	}

	return out, nil
}

// PersonDetail lists the bills personID takes part in along with their totals.
func (s *Service) PersonDetail(ctx context.Context, personID uuid.UUID, period *bill.Period) (*PersonDetail, error) {
	p, err := s.people.Get(ctx, personID)
	if err != nil {
		return nil, err
	}

	filter := bill.FilterFor(period)
	filter.PersonID = &personID

	bills, err := s.listBills(ctx, filter)
	if err != nil {
		return nil, err
	}

	detail := &PersonDetail{
		Person:       p,
		Total:        decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
	}

	for _, b := range bills {
		sp, ok := b.SplitFor(personID)
		if !ok {
			continue
		}

		detail.Lines = append(detail.Lines, SplitLine{
			BillID:           b.ID,
			Description:      b.Description,
			InstallmentIndex: b.InstallmentIndex,
			InstallmentCount: b.InstallmentCount,
			DueDate:          b.DueDate,
			Status:           b.Status,
			Amount:           sp.Amount,
			Paid:             sp.Paid,
			PaidAt:           sp.PaidAt,
		})

		detail.Total = detail.Total.Add(sp.Amount)
		if sp.Paid {
			detail.TotalPaid = detail.TotalPaid.Add(sp.Amount)
		}
	}

	detail.TotalPending = detail.Total.Sub(detail.TotalPaid)
	detail.BillCount = len(detail.Lines)

	return detail, nil
}

// Comparison ranks active people by total owed and adds each one's percentage of the
// grand total, rounded to two places.
func (s *Service) Comparison(ctx context.Context, period *bill.Period) ([]PersonShare, error) {
	totals, err := s.TotalPerPerson(ctx, period)
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(t.Total)
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]PersonShare, len(totals))

	for i, t := range totals {
		pct := decimal.Zero
		if grand.IsPositive() {
			pct = t.Total.Div(grand).Mul(hundred).Round(2)
		}

		shares[i] = PersonShare{PersonTotal: t, PercentOfTotal: pct}
	}

	slices.SortStableFunc(shares, func(a, b PersonShare) int {
		return b.Total.Cmp(a.Total)
	})

	return shares, nil
}

// Monthly assembles everything shown for a single month.
func (s *Service) Monthly(ctx context.Context, period bill.Period) (*Monthly, error) {
	bills, err := s.listBills(ctx, bill.FilterFor(&period))
	if err != nil {
		return nil, err
	}

	people, err := s.perPerson(ctx, bills)
	if err != nil {
		return nil, err
	}

	categories, err := s.byCategory(ctx, bills)
	if err != nil {
		return nil, err
	}

	m := &Monthly{
		Period:     period,
		Summary:    summarize(bills),
		People:     people,
		Categories: categories,
	}

	for _, b := range bills {
		switch b.Status {
		case bill.StatusPending:
			m.Pending = append(m.Pending, b)
		case bill.StatusPaid:
			m.Paid = append(m.Paid, b)
		}
	}

	slices.SortStableFunc(m.Pending, compareDue)
	slices.SortStableFunc(m.Paid, compareDue)

	return m, nil
}

func (s *Service) listBills(ctx context.Context, filter bill.ListFilter) ([]*bill.Bill, error) {
	bills, err := s.bills.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	return bills, nil
}

// compareDue orders bills by due date, undated last.
func compareDue(a, b *bill.Bill) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}

	return cmp.Compare(a.DueDate.Unix(), b.DueDate.Unix())
}
