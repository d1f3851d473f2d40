// Package statement holds the parsing helpers shared by the bank statement importers.
package statement

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownDate = errors.New("unrecognised date")

var (
	installmentWord     = regexp.MustCompile(`\s*-?\s*[Pp]arcela\s+(\d+)/(\d+)\s*`)
	installmentTrailing = regexp.MustCompile(`\s+(\d+)/(\d+)\s*$`)
	currencySymbols     = regexp.MustCompile(`[R$\s€]`)
)

// ExtractInstallment finds an installment marker ("Parcela 2/10" anywhere, or a trailing
// " 2/10") and returns the description without it. Descriptions without a plausible
// marker come back unchanged as installment 1 of 1.
func ExtractInstallment(desc string) (string, int, int) {
	if m := installmentWord.FindStringSubmatchIndex(desc); m != nil {
		if index, count, ok := installmentNumbers(desc, m); ok {
			clean := desc[:m[0]] + " " + desc[m[1]:]
			return strings.Join(strings.Fields(clean), " "), index, count
		}
	}

	if m := installmentTrailing.FindStringSubmatchIndex(desc); m != nil {
		if index, count, ok := installmentNumbers(desc, m); ok {
			return strings.TrimSpace(desc[:m[0]]), index, count
		}
	}

	return strings.TrimSpace(desc), 1, 1
}

func installmentNumbers(desc string, m []int) (int, int, bool) {
	index, err := strconv.Atoi(desc[m[2]:m[3]])
	if err != nil {
		return 0, 0, false
	}

	count, err := strconv.Atoi(desc[m[4]:m[5]])
	if err != nil {
		return 0, 0, false
	}

	if index < 1 || count < 1 || index > count || count > 99 {
		return 0, 0, false
	}

	return index, count, true
}

// ParseAmount reads amounts written either way round: "1.234,56", "1,234.56", "R$ 10,00"
// and "-3.5" are all accepted. When both separators appear the last one is the decimal mark.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := currencySymbols.ReplaceAllString(strings.TrimSpace(s), "")

	comma := strings.LastIndex(clean, ",")
	dot := strings.LastIndex(clean, ".")

	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case comma >= 0 && dot >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0:
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d, nil
}

// ParseDecimalComma reads amounts that always use "." for thousands and "," for decimals,
// as in "1.234,56" or "-588,74".
func ParseDecimalComma(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d, nil
}

// ParseDate tries each layout in turn.
func ParseDate(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDate, s)
}
