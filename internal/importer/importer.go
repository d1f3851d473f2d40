package importer

import (
	"io"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
)

type Bank string

const (
	BankNubank Bank = "nubank"
	BankInter  Bank = "inter"
	BankCGD    Bank = "cgd"
)

// Importer turns a statement export into normalized lines. Credits and payments are
// dropped; only what was spent is returned.
type Importer interface {
	Parse(r io.Reader) ([]bill.ImportedTransaction, error)
}
