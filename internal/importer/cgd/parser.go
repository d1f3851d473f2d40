// Package cgd reads the CSV exports of Caixa Geral de Depósitos (account, statement and card).
package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/encoding"
	"github.com/MrJamesThe3rd/rateio/internal/importer/statement"
)

var ErrUnknownLayout = errors.New("no matching CGD layout: expected columns for conta, extrato or cartão")

const dateLayout = "02-01-2006"

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the debit lines of the export. Credits, refunds and footer rows are skipped.
func (p *Parser) Parse(r io.Reader) ([]bill.ImportedTransaction, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	l, cols, header := findLayout(rows)
	if l == nil {
		return nil, ErrUnknownLayout
	}

	return parseRows(l, cols, rows[header+1:], header+1)
}

type colIndex map[string]int

// findLayout returns the first row whose cells contain every column of a known layout.
func findLayout(rows [][]string) (*layout, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if hasColumns(cols, layouts[i].columns()) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasColumns(cols colIndex, names []string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(l *layout, cols colIndex, rows [][]string, offset int) ([]bill.ImportedTransaction, error) {
	var txs []bill.ImportedTransaction

	for i, row := range rows {
		line := offset + i + 1

		date, err := time.Parse(dateLayout, cell(row, cols[l.date]))
		if err != nil {
			continue
		}

		raw := cell(row, cols[l.desc])
		if raw == "" {
			return nil, fmt.Errorf("line %d: missing description", line)
		}

		amount, ok := debit(l, cols, row)
		if !ok {
			continue
		}

		desc, index, count := statement.ExtractInstallment(raw)

		txs = append(txs, bill.ImportedTransaction{
			Description:      desc,
			RawDescription:   raw,
			Amount:           amount,
			Date:             date,
			InstallmentIndex: index,
			InstallmentCount: count,
		})
	}

	return txs, nil
}

// debit returns the spent amount as a positive value, or false for credits and blank rows.
func debit(l *layout, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch l.mode {
	case signedAmount:
		d, ok := amount(row, cols[l.amount])
		if !ok || !d.IsNegative() {
			return decimal.Zero, false
		}

		return d.Neg(), true
	case debitColumn:
		d, ok := amount(row, cols[l.debit])
		if !ok || d.IsZero() {
			return decimal.Zero, false
		}

		return d.Abs(), true
	}

	return decimal.Zero, false
}

func amount(row []string, idx int) (decimal.Decimal, bool) {
	s := cell(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := statement.ParseDecimalComma(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
