// Package export renders bills for use outside the application: a CSV sheet of a
// period and a plain-text statement for one person.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

const dateLayout = "2006-01-02"

type Details interface {
	PersonDetail(ctx context.Context, personID uuid.UUID, period *bill.Period) (*report.PersonDetail, error)
}

type Service struct {
	bills      report.BillReader
	people     report.PersonReader
	categories report.CategoryReader
	details    Details
}

func NewService(bills report.BillReader, people report.PersonReader, categories report.CategoryReader, details Details) *Service {
	return &Service{
		bills:      bills,
		people:     people,
		categories: categories,
		details:    details,
	}
}

// BillsCSV writes every bill of the period to w, one column per active person holding
// their share. It returns the number of bills written.
func (s *Service) BillsCSV(ctx context.Context, w io.Writer, period *bill.Period) (int, error) {
	bills, err := s.bills.List(ctx, bill.FilterFor(period))
	if err != nil {
		return 0, fmt.Errorf("listing bills: %w", err)
	}

	people, err := s.people.List(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("listing people: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing categories: %w", err)
	}

	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)

	header := []string{"description", "installment", "amount", "due_date", "status", "category"}
	for _, p := range people {
		header = append(header, p.Name)
	}

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, b := range bills {
		record := []string{
			b.Description,
			fmt.Sprintf("%d/%d", b.InstallmentIndex, b.InstallmentCount),
			b.Amount.StringFixed(2),
			formatDate(b.DueDate),
			string(b.Status),
			"",
		}

		if b.CategoryID != nil {
			record[5] = categoryNames[*b.CategoryID]
		}

		for _, p := range people {
			share := ""
			if sp, ok := b.SplitFor(p.ID); ok {
				share = sp.Amount.StringFixed(2)
			}

			record = append(record, share)
		}

		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing bill %s: %w", b.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(bills), nil
}

// Statement renders what personID owes over the period, one line per bill followed by totals.
func (s *Service) Statement(ctx context.Context, personID uuid.UUID, period *bill.Period) (string, error) {
	d, err := s.details.PersonDetail(ctx, personID, period)
	if err != nil {
		return "", fmt.Errorf("loading person detail: %w", err)
	}

	var sb strings.Builder

	title := d.Person.Name
	if period != nil {
		title = fmt.Sprintf("%s, %02d/%d", title, int(period.Month), period.Year)
	}

	sb.WriteString(title + "\n\n")

	for _, l := range d.Lines {
		desc := l.Description
		if l.InstallmentCount > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", desc, l.InstallmentIndex, l.InstallmentCount)
		}

		state := "pending"
		if l.Paid {
			state = "paid"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n", formatDate(l.DueDate), desc, money(l.Amount), state)
	}

	fmt.Fprintf(&sb, "\nBills: %d\nTotal: %s\nPaid: %s\nPending: %s\n",
		d.BillCount, money(d.Total), money(d.TotalPaid), money(d.TotalPending))

	return sb.String(), nil
}

// Archive writes a zip holding the period's bills.csv and one statement per active person.
func (s *Service) Archive(ctx context.Context, w io.Writer, period *bill.Period) error {
	zw := zip.NewWriter(w)

	f, err := zw.Create("bills.csv")
	if err != nil {
		return fmt.Errorf("creating bills.csv: %w", err)
	}

	if _, err := s.BillsCSV(ctx, f, period); err != nil {
		return err
	}

	people, err := s.people.List(ctx, true)
	if err != nil {
		return fmt.Errorf("listing people: %w", err)
	}

	for _, p := range people {
		text, err := s.Statement(ctx, p.ID, period)
		if err != nil {
			return fmt.Errorf("statement for %s: %w", p.Name, err)
		}

		f, err := zw.Create("statements/" + fileName(p.Name) + ".txt")
		if err != nil {
			return fmt.Errorf("creating statement for %s: %w", p.Name, err)
		}

		if _, err := io.WriteString(f, text); err != nil {
			return fmt.Errorf("writing statement for %s: %w", p.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func fileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(dateLayout)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
