package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyLoadedMsg struct{ count int }

// HistoryModel shows the route addition ledger: what this tool added,
// when, and whether it was persistent. Deletes never remove entries.
type HistoryModel struct {
	Backend Backend
	Table   table.Model
	Count   int
	Status  string
}

func NewHistoryModel(backend Backend) HistoryModel {
	columns := []table.Column{
		{Title: "Timestamp", Width: 20},
		{Title: "Destination", Width: 16},
		{Title: "Mask", Width: 16},
		{Title: "Gateway", Width: 16},
		{Title: "Interface", Width: 16},
		{Title: "Persistent", Width: 10},
	}
	return HistoryModel{
		Backend: backend,
		Table:   newTable(columns, 14),
	}
}

func (m HistoryModel) Init() tea.Cmd {
	return m.load()
}

func (m HistoryModel) load() tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		return historyLoadedMsg{count: len(backend.History())}
	}
}

func (m HistoryModel) reload() HistoryModel {
	records := m.Backend.History()
	m.Count = len(records)
	rows := make([]table.Row, len(records))
	for i, r := range records {
		persistent := "No"
		if r.Persistent {
			persistent = "Yes"
		}
		rows[i] = table.Row{
			r.Timestamp, r.Destination, r.Mask, r.Gateway, r.Interface, persistent,
		}
	}
	m.Table.SetRows(rows)
	return m
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m = m.reload()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m = m.reload()
			m.Status = ""
		case "C":
			if err := m.Backend.ClearHistory(); err != nil {
				m.Status = err.Error()
			} else {
				m.Status = "history cleared"
			}
			m = m.reload()
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	status := StyleSubtitle.Render(fmt.Sprintf("%d additions recorded", m.Count))
	if m.Status != "" {
		status = StyleStatusWarn.Render(m.Status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("ROUTE HISTORY (r: refresh, C: clear)"),
		StyleCard.Render(m.Table.View()),
		status,
	)
}
