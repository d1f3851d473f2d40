package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/importer/cgd"
	"github.com/MrJamesThe3rd/rateio/internal/importer/nubank"
)

var (
	ErrUnknownBank    = errors.New("unknown bank")
	ErrNoTransactions = errors.New("no transactions found in file")
)

type Service struct {
	importers map[Bank]Importer
}

// NewService registers the built-in importers. Inter exports the same layout as Nubank.
func NewService() *Service {
	s := &Service{importers: make(map[Bank]Importer)}

	s.Register(BankNubank, nubank.NewParser())
	s.Register(BankInter, nubank.NewParser())
	s.Register(BankCGD, cgd.NewParser())

	return s
}

// Register adds or replaces the importer for bank.
func (s *Service) Register(bank Bank, imp Importer) {
	s.importers[Bank(strings.ToLower(string(bank)))] = imp
}

// Banks lists the supported banks in alphabetical order.
func (s *Service) Banks() []Bank {
	banks := make([]Bank, 0, len(s.importers))
	for b := range s.importers {
		banks = append(banks, b)
	}

	slices.Sort(banks)

	return banks
}

func (s *Service) Import(bank Bank, r io.Reader) ([]bill.ImportedTransaction, error) {
	imp, ok := s.importers[Bank(strings.ToLower(string(bank)))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	txs, err := imp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", bank, err)
	}

	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	slog.Info("statement parsed", "bank", bank, "lines", len(txs))

	return txs, nil
}
