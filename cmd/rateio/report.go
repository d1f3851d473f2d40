package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

func newReportCommand() *cobra.Command {
	now := time.Now()

	var month, year int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			svc, db, err := openServices()
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := svc.Reports.Monthly(cmd.Context(), bill.Period{Month: time.Month(month), Year: year})
			if err != nil {
				return err
			}

			renderMonthly(cmd.OutOrStdout(), m)

			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month number")
	cmd.Flags().IntVar(&year, "year", now.Year(), "year")

	return cmd
}

func renderMonthly(w io.Writer, m *report.Monthly) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %d", m.Period.Month, m.Period.Year)))
	fmt.Fprintf(w, "Bills: %d  Total: %s  Paid: %s  Pending: %s\n\n",
		m.Summary.BillCount,
		m.Summary.Total.StringFixed(2),
		m.Summary.Paid.StringFixed(2),
		m.Summary.Pending.StringFixed(2),
	)

	people := table.New().Headers("PERSON", "TOTAL", "PAID", "PENDING")
	for _, p := range m.People {
		people.Row(p.Name, p.Total.StringFixed(2), p.TotalPaid.StringFixed(2), p.TotalPending.StringFixed(2))
	}

	fmt.Fprintln(w, people.String())

	categories := table.New().Headers("CATEGORY", "BILLS", "TOTAL")
	for _, c := range m.Categories {
		categories.Row(c.Icon+" "+c.Name, fmt.Sprint(c.Count), c.Total.StringFixed(2))
	}

	fmt.Fprintln(w, categories.String())

	if len(m.Pending) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Pending"))

		for _, b := range m.Pending {
			fmt.Fprintf(w, "  %s  %s  %s\n", dueDate(b), label(b), b.Amount.StringFixed(2))
		}
	}
}

func label(b *bill.Bill) string {
	if b.InstallmentCount > 1 {
		return fmt.Sprintf("%s (%d/%d)", b.Description, b.InstallmentIndex, b.InstallmentCount)
	}

	return b.Description
}

func dueDate(b *bill.Bill) string {
	if b.DueDate == nil {
		return "----------"
	}

	return b.DueDate.Format("2006-01-02")
}
