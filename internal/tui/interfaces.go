package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slate-integrations/ipman/internal/netcfg"
)

type interfacesLoadedMsg struct {
	items []netcfg.Interface
	err   error
}

type InterfacesModel struct {
	Backend Backend
	Table   table.Model
	Count   int
	Err     error
}

func NewInterfacesModel(backend Backend) InterfacesModel {
	columns := []table.Column{
		{Title: "Index", Width: 6},
		{Title: "Name", Width: 32},
		{Title: "IPv4", Width: 16},
		{Title: "State", Width: 14},
	}
	return InterfacesModel{
		Backend: backend,
		Table:   newTable(columns, 14),
	}
}

func (m InterfacesModel) Init() tea.Cmd {
	return m.load()
}

func (m InterfacesModel) load() tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		items, err := backend.Interfaces(context.Background())
		return interfacesLoadedMsg{items: items, err: err}
	}
}

func (m InterfacesModel) Update(msg tea.Msg) (InterfacesModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case interfacesLoadedMsg:
		m.Err = msg.err
		m.Count = len(msg.items)
		rows := make([]table.Row, len(msg.items))
		for i, it := range msg.items {
			state := "Disconnected"
			if it.Connected {
				state = "Connected"
			}
			rows[i] = table.Row{strconv.Itoa(it.Index), it.Name, it.IPv4, state}
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

func (m InterfacesModel) View() string {
	status := StyleSubtitle.Render(fmt.Sprintf("%d interfaces", m.Count))
	if m.Err != nil {
		status = StyleError.Render(m.Err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("IPv4 INTERFACES (r: refresh)"),
		StyleCard.Render(m.Table.View()),
		status,
	)
}
