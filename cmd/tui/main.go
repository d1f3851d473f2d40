package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rateio/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/rateio/internal/app"
	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/config"
	"github.com/MrJamesThe3rd/rateio/internal/database"
	"github.com/MrJamesThe3rd/rateio/internal/logging"
)

type model struct {
	services *app.Services
	period   bill.Period

	currentView View

	summaryView view.SummaryModel
	billsView   view.BillsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewSummary View = 1
	ViewBills   View = 2
)

func initialModel(cfg *config.Config) (model, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return model{}, fmt.Errorf("connecting to database: %w", err)
	}

	svc := app.New(db, cfg)
	period := view.CurrentPeriod(time.Now())

	return model{
		services:    svc,
		period:      period,
		currentView: ViewMenu,
		summaryView: view.NewSummaryModel(svc.Reports, period),
		billsView:   view.NewBillsModel(svc.Bills, svc.People, svc.Categories, period),
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.services.Reports, m.period)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.services.Bills, m.services.People, m.services.Categories, m.period)

				return m, m.billsView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.PeriodChangedMsg:
		m.period = msg.Period
	}

	switch m.currentView {
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rateio\n\n" +
				"1. Monthly Summary\n" +
				"2. Bills\n\n" +
				"q. Quit",
		)
	case ViewSummary:
		return m.summaryView.View() + "\n" + m.summaryView.ShortHelp()
	case ViewBills:
		return m.billsView.View() + "\n" + m.billsView.ShortHelp()
	}

	return "Unknown View"
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// bubbletea owns the terminal from here on.
	logFile, err := logging.SetupFile(cfg.App.LogFile, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	m, err := initialModel(cfg)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
