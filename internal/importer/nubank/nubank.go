// Package nubank reads Nubank credit card CSV exports. Banco Inter exports the same layout.
package nubank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/encoding"
	"github.com/MrJamesThe3rd/rateio/internal/importer/statement"
)

var ErrMissingColumns = errors.New("missing date, title or amount column")

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2006/01/02"}

// Header aliases, compared lower-cased.
var (
	dateColumns   = []string{"date", "data"}
	titleColumns  = []string{"title", "descrição", "descricao", "título", "titulo"}
	amountColumns = []string{"amount", "valor", "value"}
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the purchases of the statement. Negative lines (payments and credits) and
// lines whose date or amount cannot be read are skipped.
func (p *Parser) Parse(r io.Reader) ([]bill.ImportedTransaction, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingColumns
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	dateIdx, titleIdx, amountIdx := column(header, dateColumns), column(header, titleColumns), column(header, amountColumns)
	if dateIdx < 0 || titleIdx < 0 || amountIdx < 0 {
		return nil, ErrMissingColumns
	}

	var txs []bill.ImportedTransaction

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		raw := cell(row, titleIdx)
		if raw == "" {
			continue
		}

		date, err := statement.ParseDate(cell(row, dateIdx), dateLayouts...)
		if err != nil {
			slog.Warn("skipping statement line", "line", line, "error", err)
			continue
		}

		amount, err := statement.ParseAmount(cell(row, amountIdx))
		if err != nil {
			slog.Warn("skipping statement line", "line", line, "error", err)
			continue
		}

		if !amount.IsPositive() {
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

func column(header []string, aliases []string) int {
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))

		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}

	return -1
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
