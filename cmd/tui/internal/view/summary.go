package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

type SummaryModel struct {
	CommonModel
	reportService *report.Service

	period  bill.Period
	monthly *report.Monthly
	loading bool
	err     error
}

func NewSummaryModel(reportSvc *report.Service, period bill.Period) SummaryModel {
	return SummaryModel{
		reportService: reportSvc,
		period:        period,
		loading:       true,
	}
}

func (m SummaryModel) Title() string     { return "Monthly Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | ←/→: month | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		if msg.period != m.period {
			return m, nil
		}

		m.loading = false
		m.monthly, m.err = msg.monthly, msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left", "h":
			return m.move(-1)
		case "right", "l":
			return m.move(1)
		}
	}

	return m, nil
}

func (m SummaryModel) move(delta int) (tea.Model, tea.Cmd) {
	m.period = ShiftPeriod(m.period, delta)
	m.loading = true

	period := m.period

	return m, tea.Batch(m.loadCmd(), func() tea.Msg { return PeriodChangedMsg{Period: period} })
}

func (m SummaryModel) View() string {
	title := headingStyle.Render("◀ " + FormatPeriod(m.period) + " ▶")

	switch {
	case m.loading:
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\nLoading summary...")
	case m.err != nil:
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + fmt.Sprintf("Error: %v", m.err))
	}

	s := m.monthly.Summary
	totals := fmt.Sprintf("Bills %d   Total %s   Paid %s   Pending %s",
		s.BillCount, FormatAmount(s.Total), FormatAmount(s.Paid), FormatAmount(s.Pending))

	var people strings.Builder
	people.WriteString(headingStyle.Render("People") + "\n")

	for _, p := range m.monthly.People {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		fmt.Fprintf(&people, "%s %-14s %10s  %s\n", dot, p.Name, FormatAmount(p.Total),
			faintStyle.Render("pending "+FormatAmount(p.TotalPending)))
	}

	var categories strings.Builder
	categories.WriteString(headingStyle.Render("Categories") + "\n")

	for _, c := range m.monthly.Categories {
		fmt.Fprintf(&categories, "%s %-16s %3d %10s\n", c.Icon, c.Name, c.Count, FormatAmount(c.Total))
	}

	var pending strings.Builder
	pending.WriteString(headingStyle.Render("Pending bills") + "\n")

	if len(m.monthly.Pending) == 0 {
		pending.WriteString(faintStyle.Render("nothing pending") + "\n")
	}

	for _, b := range m.monthly.Pending {
		fmt.Fprintf(&pending, "%s  %-30s %10s\n", FormatDate(b.DueDate), billLabel(b), FormatAmount(b.Amount))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		totals,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(strings.TrimRight(people.String(), "\n")),
			panelStyle.Render(strings.TrimRight(categories.String(), "\n")),
		),
		panelStyle.Render(strings.TrimRight(pending.String(), "\n")),
	))
}

func billLabel(b *bill.Bill) string {
	if b.InstallmentCount > 1 {
		return fmt.Sprintf("%s (%d/%d)", b.Description, b.InstallmentIndex, b.InstallmentCount)
	}

	return b.Description
}

// Messages

type loadSummaryMsg struct {
	period  bill.Period
	monthly *report.Monthly
	err     error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		monthly, err := m.reportService.Monthly(ctx, period)

		return loadSummaryMsg{period: period, monthly: monthly, err: err}
	}
}
