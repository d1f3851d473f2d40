package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a money value with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats an optional due date as YYYY-MM-DD.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Format("2006-01-02")
}

// FormatPeriod renders a period as "March 2024".
func FormatPeriod(p bill.Period) string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// CurrentPeriod is the month containing now.
func CurrentPeriod(now time.Time) bill.Period {
	return bill.Period{Month: now.Month(), Year: now.Year()}
}

// ShiftPeriod moves p by delta months.
func ShiftPeriod(p bill.Period, delta int) bill.Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return bill.Period{Month: t.Month(), Year: t.Year()}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
