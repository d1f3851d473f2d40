package cgd

type amountMode int

const (
	// signedAmount is one column where spending is negative ("-10,00").
	signedAmount amountMode = iota
	// debitColumn keeps spending in its own column next to a credit column.
	debitColumn
)

// layout is the header signature of one CGD export.
type layout struct {
	name   string
	date   string
	desc   string
	mode   amountMode
	amount string
	debit  string
	credit string
}

func (l layout) columns() []string {
	cols := []string{l.date, l.desc}

	if l.mode == debitColumn {
		return append(cols, l.debit, l.credit)
	}

	return append(cols, l.amount)
}

// layouts are tried in order; the card export shares "Descrição" with the others so it goes first.
var layouts = []layout{
	{name: "cartão", date: "Data", desc: "Descrição", mode: debitColumn, debit: "Débito", credit: "Crédito"},
	{name: "extrato", date: "Data mov.", desc: "Descrição", mode: signedAmount, amount: "Movimento"},
	{name: "conta", date: "Data mov.", desc: "Descrição", mode: signedAmount, amount: "Montante"},
}
