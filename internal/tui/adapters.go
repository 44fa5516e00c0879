package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slate-integrations/ipman/internal/netcfg"
)

type adaptersLoadedMsg struct {
	items []netcfg.Adapter
	err   error
}

type AdaptersModel struct {
	Backend Backend
	Table   table.Model
	Count   int
	Err     error
}

func NewAdaptersModel(backend Backend) AdaptersModel {
	columns := []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Status", Width: 8},
		{Title: "Mode", Width: 7},
		{Title: "IP Address", Width: 16},
		{Title: "Netmask", Width: 16},
		{Title: "Gateway", Width: 16},
		{Title: "DNS", Width: 24},
	}
	return AdaptersModel{
		Backend: backend,
		Table:   newTable(columns, 14),
	}
}

func (m AdaptersModel) Init() tea.Cmd {
	return m.load()
}

func (m AdaptersModel) load() tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		items, err := backend.Adapters(context.Background())
		return adaptersLoadedMsg{items: items, err: err}
	}
}

func (m AdaptersModel) Update(msg tea.Msg) (AdaptersModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case adaptersLoadedMsg:
		m.Err = msg.err
		m.Count = len(msg.items)
		rows := make([]table.Row, len(msg.items))
		for i, a := range msg.items {
			mode := "Static"
			if a.DHCP {
				mode = "DHCP"
			}
			rows[i] = table.Row{
				a.Name, a.Status, mode,
				a.IPAddress, a.Netmask(), a.Gateway,
				strings.Join(a.DNS, ", "),
			}
		}
		m.Table.SetRows(rows)

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m AdaptersModel) View() string {
	status := StyleSubtitle.Render(fmt.Sprintf("%d adapters", m.Count))
	if m.Err != nil {
		status = StyleError.Render(m.Err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("NETWORK ADAPTERS (r: refresh)"),
		StyleCard.Render(m.Table.View()),
		status,
	)
}
