package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateConfirm
	billsStateCreate
)

type pendingAction int

const (
	actionDelete pendingAction = iota
	actionDeletePlan
)

type BillsModel struct {
	CommonModel
	billService     *bill.Service
	personService   *person.Service
	categoryService *category.Service

	state  billsState
	period bill.Period
	table  table.Model
	bills  []*bill.Bill

	form      *huh.Form
	formData  *billForm
	confirmed *bool
	action    pendingAction
	target    *bill.Bill

	loading bool
	err     error
	status  string
}

func NewBillsModel(billSvc *bill.Service, personSvc *person.Service, categorySvc *category.Service, period bill.Period) BillsModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Inst.", Width: 7},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 9},
		{Title: "Plan", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BillsModel{
		billService:     billSvc,
		personService:   personSvc,
		categoryService: categorySvc,
		period:          period,
		table:           t,
		loading:         true,
	}
}

func (m BillsModel) Title() string { return "Bills" }
func (m BillsModel) ShortHelp() string {
	switch m.state {
	case billsStateConfirm:
		return "←/→: choose | Enter: confirm | Esc: cancel"
	case billsStateCreate:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | ←/→: month | n: new | p: mark paid | x: delete | X: delete plan | r: refresh"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillsMsg:
		if msg.period != m.period {
			return m, nil
		}

		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.bills = msg.bills
		m.table.SetRows(billRows(m.bills))

		return m, nil

	case formDataMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.formData = newBillForm(time.Now())
		m.form = m.formData.build(msg.people, msg.categories)
		m.state = billsStateCreate
		m.table.Blur()

		return m, m.form.Init()

	case billActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case PeriodChangedMsg:
		if msg.Period != m.period {
			m.period = msg.Period
			m.loading = true

			return m, m.loadCmd()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case billsStateConfirm:
		return m.updateForm(msg, m.confirmCmd)
	case billsStateCreate:
		return m.updateForm(msg, m.createCmd)
	}

	return m.updateBrowse(msg)
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left", "h":
			return m.move(-1)
		case "right", "l":
			return m.move(1)
		case "n":
			return m, m.formDataCmd()
		case "p":
			return m, m.markPaidCmd()
		case "x":
			return m.confirm(actionDelete)
		case "X":
			return m.confirm(actionDeletePlan)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillsModel) move(delta int) (tea.Model, tea.Cmd) {
	m.period = ShiftPeriod(m.period, delta)
	m.loading = true

	period := m.period

	return m, tea.Batch(m.loadCmd(), func() tea.Msg { return PeriodChangedMsg{Period: period} })
}

func (m BillsModel) selected() *bill.Bill {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.bills) {
		return nil
	}

	return m.bills[idx]
}

func (m BillsModel) confirm(action pendingAction) (tea.Model, tea.Cmd) {
	b := m.selected()
	if b == nil {
		return m, nil
	}

	if action == actionDeletePlan && b.PlanID == nil {
		m.status = "This bill is not part of an installment plan."
		return m, nil
	}

	title := fmt.Sprintf("Delete %q?", billLabel(b))
	if action == actionDeletePlan {
		title = fmt.Sprintf("Delete all %d installments of %q?", b.InstallmentCount, b.Description)
	}

	m.action = action
	m.target = b
	m.confirmed = new(false)
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Keep").
			Value(m.confirmed),
	)).WithWidth(50).WithShowHelp(false)
	m.state = billsStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

// updateForm drives the active huh form and runs done once it completes.
func (m BillsModel) updateForm(msg tea.Msg, done func() tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, done()
	case huh.StateAborted:
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

func (m BillsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := headingStyle.Render("◀ " + FormatPeriod(m.period) + " ▶")
	if m.loading {
		header += faintStyle.Render("  loading...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != billsStateBrowse && m.form != nil {
		title := "New Bill"
		if m.state == billsStateConfirm {
			title = "Confirm"
		}

		panel := panelStyle.Padding(1, 2).Width(54).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func billRows(bills []*bill.Bill) []table.Row {
	rows := make([]table.Row, 0, len(bills))

	for _, b := range bills {
		plan := ""
		if b.PlanID != nil {
			plan = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(b.DueDate),
			b.Description,
			fmt.Sprintf("%d/%d", b.InstallmentIndex, b.InstallmentCount),
			FormatAmount(b.Amount),
			string(b.Status),
			plan,
		})
	}

	return rows
}

// Messages

type loadBillsMsg struct {
	period bill.Period
	bills  []*bill.Bill
	err    error
}

type formDataMsg struct {
	people     []*person.Person
	categories []*category.Category
	err        error
}

type billActionMsg struct {
	status string
	err    error
}

func (m BillsModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.billService.List(ctx, bill.FilterFor(&period))

		return loadBillsMsg{period: period, bills: bills, err: err}
	}
}

func (m BillsModel) formDataCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.personService.List(ctx, true)
		if err != nil {
			return formDataMsg{err: err}
		}

		categories, err := m.categoryService.List(ctx)

		return formDataMsg{people: people, categories: categories, err: err}
	}
}

func (m BillsModel) markPaidCmd() tea.Cmd {
	b := m.selected()
	if b == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.billService.MarkPaid(ctx, b.ID)

		return billActionMsg{status: fmt.Sprintf("Marked %q as paid.", b.Description), err: err}
	}
}

func (m BillsModel) confirmCmd() tea.Cmd {
	b, action, confirmed := m.target, m.action, m.confirmed != nil && *m.confirmed

	return func() tea.Msg {
		if !confirmed || b == nil {
			return billActionMsg{status: "Nothing deleted."}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		var (
			n   int
			err error
		)

		if action == actionDeletePlan {
			n, err = m.billService.DeletePlan(ctx, *b.PlanID)
		} else {
			n, err = m.billService.Delete(ctx, b.ID, false)
		}

		return billActionMsg{status: fmt.Sprintf("Deleted %d bill(s).", n), err: err}
	}
}

func (m BillsModel) createCmd() tea.Cmd {
	params, err := m.formData.params()
	if err != nil {
		return func() tea.Msg { return billActionMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ids, err := m.billService.Create(ctx, params)

		return billActionMsg{status: fmt.Sprintf("Created %d bill(s).", len(ids)), err: err}
	}
}
