package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// PeriodChangedMsg is sent when a screen moves to another month so the others can follow.
type PeriodChangedMsg struct {
	Period bill.Period
}
